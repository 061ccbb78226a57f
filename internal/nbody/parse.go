package nbody

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// recordFields is the per-line layout: id, mass, 3 position components,
// 3 velocity components. The id is carried by the input format but unused.
const recordFields = 8

// Read parses whitespace-separated body records from r, one body per line.
// Blank lines are skipped. Any record with the wrong field count or a
// non-numeric token aborts the parse; no partial system is returned.
func Read(r io.Reader) (System, error) {
	sys := make(System, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != recordFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, recordFields, len(fields))
		}

		vals := make([]float64, recordFields)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q", lineNo, f)
			}
			vals[i] = v
		}

		sys = append(sys, Body{
			Mass: vals[1],
			Pos:  Vec3{vals[2], vals[3], vals[4]},
			Vel:  Vec3{vals[5], vals[6], vals[7]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bodies: %w", err)
	}

	return sys, nil
}
