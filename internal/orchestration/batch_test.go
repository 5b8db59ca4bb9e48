package orchestration

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseBatch(t *testing.T) {
	t.Parallel()
	input := `# products
mul: x - 1 ; x + 1

  x^2 + x^2
DIVMOD:x^2 + 1;x + 1
degree:
pow: x + 1 ; 3 ; 4
`
	jobs, err := ParseBatch(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBatch() error: %v", err)
	}
	want := []Job{
		{Line: 2, Op: "mul", Operands: []string{"x - 1", "x + 1"}},
		{Line: 4, Op: "parse", Operands: []string{"x^2 + x^2"}},
		{Line: 5, Op: "divmod", Operands: []string{"x^2 + 1", "x + 1"}},
		{Line: 6, Op: "degree", Operands: nil},
		{Line: 7, Op: "pow", Operands: []string{"x + 1", "3", "4"}},
	}
	if !reflect.DeepEqual(jobs, want) {
		t.Errorf("ParseBatch() =\n%+v\nwant\n%+v", jobs, want)
	}
}

func TestParseBatchEmpty(t *testing.T) {
	t.Parallel()
	jobs, err := ParseBatch(strings.NewReader("\n# nothing\n"))
	if err != nil {
		t.Fatalf("ParseBatch() error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestParseBatchMissingOperation(t *testing.T) {
	t.Parallel()
	_, err := ParseBatch(strings.NewReader("add: x ; 1\n : x\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected an error on line 2, got %v", err)
	}
}

func TestJobExpression(t *testing.T) {
	t.Parallel()
	job := Job{Op: "sub", Operands: []string{"x", "1"}}
	if got := job.Expression(); got != "sub: x ; 1" {
		t.Errorf("Expression() = %q", got)
	}
}
