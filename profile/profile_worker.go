package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this
// channel only has one "producer", and one "consumer". its purpose is to
// guarantee the order of execution of adding / removing a profiling session
// and sampling events, while enabling the caller (translate.Run) to sample
// the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		collectSample(c.pc)
	}

}

// collectSample must be called from the worker go routine
func collectSample(pc []uintptr) {
	// for each session we may have a distinct sample, since ids of functions
	// and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{1}} // new statements count
	}

	frames := runtime.CallersFrames(pc)
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		if strings.HasSuffix(frame.Function, "testing.tRunner") {
			// below this is test harness machinery
			break
		}

		// filter translator private plumbing from the trace.
		if filterTranslatorPrivateFunc(frame.Function) {
			if !more {
				break
			}
			continue
		}

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}

		if !more {
			break
		}
	}

	for i := range sessions {
		sessions[i].pprof.Sample = append(sessions[i].pprof.Sample, samples[i])
	}
}

func shortName(function string) string {
	fe := strings.Split(function, "/")
	return fe[len(fe)-1]
}

func filterTranslatorPrivateFunc(f string) bool {
	const prefix = "github.com/amplet/amplet/translate.(*Translator)."
	if strings.HasPrefix(f, prefix) && len(f) > len(prefix) {
		// keep the exported entry points, hide the emit plumbing
		c := []rune(f)[len(prefix)]
		if unicode.IsLower(c) {
			return true
		}
	}
	return false
}
