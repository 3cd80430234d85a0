// Package collapsed reads and writes folded-stacks text: one sample per
// line, semicolon-separated frames ordered root to leaf, followed by a
// count.
package collapsed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Sample struct {
	// Stack is ordered from outermost frame to leaf.
	Stack []string
	Value int64
}

type Profile struct {
	Samples []Sample
}

// TotalValue sums the values of all samples.
func (p *Profile) TotalValue() int64 {
	var total int64
	for _, s := range p.Samples {
		total += s.Value
	}
	return total
}

func Decode(r io.Reader) (*Profile, error) {
	res := &Profile{Samples: make([]Sample, 0)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndexByte(line, ' ')
		if idx == -1 {
			return nil, errors.New("collapsed: malformed input")
		}
		count, err := strconv.ParseInt(line[idx+1:], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("collapsed: malformed input: %w", err)
		}
		res.Samples = append(res.Samples, Sample{
			Stack: strings.Split(line[:idx], ";"),
			Value: count,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("collapsed: %w", err)
	}

	return res, nil
}

func Encode(profile *Profile, w io.Writer) error {
	for _, sample := range profile.Samples {
		_, err := fmt.Fprintf(w, "%s %d\n", strings.Join(sample.Stack, ";"), sample.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func Unmarshal(buf []byte) (*Profile, error) {
	return Decode(bytes.NewBuffer(buf))
}

func Marshal(profile *Profile) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := Encode(profile, buf)
	return buf.Bytes(), err
}
