// Package snap decides whether subtitle timestamps align with scene cuts.
//
// Detector samples the frames around a timestamp, measures consecutive-frame
// differences, and reports the offset of the strongest cut. Cache holds frame
// samples and decisions so repeated lookups skip decoding; a Backend such as
// snapstore keeps them across runs.
package snap
