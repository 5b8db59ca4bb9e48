package orchestration

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/polycalc/internal/config"
)

// Job is one evaluation read from a batch file.
type Job struct {
	// Line is the 1-based line number of the job in its file.
	Line int
	// Op is the operation name, lowercased.
	Op string
	// Operands are the textual polynomials.
	Operands []string
}

// Expression renders the job back in batch syntax.
func (j Job) Expression() string {
	return j.Op + ": " + strings.Join(j.Operands, " ; ")
}

// ParseBatch reads jobs from r, one per line, in the form
//
//	op: operand ; operand
//
// A line without a colon is a polynomial to normalize with the "parse"
// operation. Blank lines and lines starting with '#' are skipped. Operation
// names and operand counts are not checked here; an unknown operation fails
// its own job only.
//
// Parameters:
//   - r: The batch source.
//
// Returns:
//   - []Job: The jobs, in file order.
//   - error: An error if r cannot be read or a line has an empty operation.
func ParseBatch(r io.Reader) ([]Job, error) {
	var jobs []Job
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		op, rest, found := strings.Cut(text, ":")
		if !found {
			jobs = append(jobs, Job{Line: line, Op: config.DefaultOp, Operands: []string{text}})
			continue
		}
		op = strings.ToLower(strings.TrimSpace(op))
		if op == "" {
			return nil, fmt.Errorf("line %d: missing operation before ':'", line)
		}

		var operands []string
		if rest = strings.TrimSpace(rest); rest != "" {
			for _, operand := range strings.Split(rest, ";") {
				operands = append(operands, strings.TrimSpace(operand))
			}
		}
		jobs = append(jobs, Job{Line: line, Op: op, Operands: operands})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	return jobs, nil
}
