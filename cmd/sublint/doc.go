// Command sublint checks ASS/SSA and SRT subtitle scripts for style,
// typography and timing problems.
package main
