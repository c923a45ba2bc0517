package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Ground    bool
	Annotate  bool
	Solve     bool
	Branch    bool
	Coherence bool
	Sat       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Ground = boolEnv("LFG_DEBUG_GROUND")
	d.Annotate = boolEnv("LFG_DEBUG_ANNOTATE")
	d.Solve = boolEnv("LFG_DEBUG_SOLVE")
	d.Branch = boolEnv("LFG_DEBUG_BRANCH")
	d.Coherence = boolEnv("LFG_DEBUG_COHERENCE")
	d.Sat = boolEnv("LFG_DEBUG_SAT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Ground() bool    { return d.Ground }
func Annotate() bool  { return d.Annotate }
func Solve() bool     { return d.Solve }
func Branch() bool    { return d.Branch }
func Coherence() bool { return d.Coherence }
func Sat() bool       { return d.Sat }

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
