// Package workload reads process lists for the simulator.
//
// Two encodings are supported. The classic one is a stream of
// whitespace-separated integers: a header "count preemptive quantum"
// followed by count triples "arrival burst priority". The YAML one carries
// the same information as named fields.
package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"cpusched/internal/sched"
)

// maxPrealloc bounds the capacity reserved from the header count; a count
// larger than the input is reported when the values run out.
const maxPrealloc = 1024

// Workload is a parsed input file.
type Workload struct {
	Preemptive bool               `yaml:"preemptive"`
	Quantum    int                `yaml:"quantum"`
	Processes  []sched.Descriptor `yaml:"processes"`
}

// Load reads path, choosing the decoder by extension.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(data, path)
	default:
		return Parse(bytes.NewReader(data), path)
	}
}

// Parse decodes the classic numeric format. source only labels errors.
func Parse(r io.Reader, source string) (*Workload, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	idx := 0
	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("reading %s: %w", source, err)
			}
			return 0, &sched.MalformedInputError{Source: source, Index: idx, Reason: "unexpected end of input, want " + what}
		}
		tok := sc.Text()
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, &sched.MalformedInputError{Source: source, Index: idx, Reason: fmt.Sprintf("%s %q is not an integer", what, tok)}
		}
		idx++
		return v, nil
	}

	count, err := next("process count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, &sched.MalformedInputError{Source: source, Index: 0, Reason: fmt.Sprintf("process count %d is negative", count)}
	}
	preempt, err := next("preemptive flag")
	if err != nil {
		return nil, err
	}
	quantum, err := next("quantum")
	if err != nil {
		return nil, err
	}

	w := &Workload{
		Preemptive: preempt != 0,
		Quantum:    quantum,
		Processes:  make([]sched.Descriptor, 0, min(count, maxPrealloc)),
	}
	for i := 0; i < count; i++ {
		var d sched.Descriptor
		if d.Arrival, err = next("arrival time"); err != nil {
			return nil, err
		}
		if d.Burst, err = next("burst time"); err != nil {
			return nil, err
		}
		if d.Priority, err = next("priority"); err != nil {
			return nil, err
		}
		w.Processes = append(w.Processes, d)
	}
	if err := w.validate(source); err != nil {
		return nil, err
	}
	return w, nil
}

// ParseYAML decodes the YAML format.
func ParseYAML(data []byte, source string) (*Workload, error) {
	var w Workload
	if err := yaml.UnmarshalWithOptions(data, &w, yaml.DisallowUnknownField()); err != nil {
		return nil, &sched.MalformedInputError{Source: source, Index: -1, Reason: err.Error()}
	}
	if err := w.validate(source); err != nil {
		return nil, err
	}
	return &w, nil
}

func (w *Workload) validate(source string) error {
	for i, d := range w.Processes {
		if d.Burst < 1 {
			return &sched.MalformedInputError{Source: source, Index: i, Reason: fmt.Sprintf("process %d has burst time %d", i+1, d.Burst)}
		}
		if d.Arrival < 0 {
			return &sched.MalformedInputError{Source: source, Index: i, Reason: fmt.Sprintf("process %d has arrival time %d", i+1, d.Arrival)}
		}
	}
	return nil
}

// Write encodes w in the classic format.
func Write(out io.Writer, w *Workload) error {
	bw := bufio.NewWriter(out)
	preempt := 0
	if w.Preemptive {
		preempt = 1
	}
	fmt.Fprintf(bw, "%d %d %d\n", len(w.Processes), preempt, w.Quantum)
	for _, d := range w.Processes {
		fmt.Fprintf(bw, "%d %d %d\n", d.Arrival, d.Burst, d.Priority)
	}
	return bw.Flush()
}
