package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	w := New("  ")
	w.WriteBlock("type Query {", "}", func() {
		w.WriteDocString(`"""`, "Reports.\n  Second line.")
		w.WriteLinef("%s: [%s!]", "reports", "Report")
	})
	w.BlankLine()
	w.BlankLine()
	w.Write("")
	w.WriteLine("scalar Date")
	assert.Equal(t, "type Query {\n  \"\"\"\n  Reports.\n  Second line.\n  \"\"\"\n  reports: [Report!]\n}\n\nscalar Date\n", w.String())
}

func TestWriter_Indent(t *testing.T) {
	w := New("    ")
	w.Indent(2)
	w.WriteLine("self.x = None")
	w.Dedent()
	w.WriteLine("pass")
	w.Dedent()
	w.Dedent()
	w.WriteLine("end")
	assert.Equal(t, "        self.x = None\n    pass\nend\n", w.String())
	assert.Equal(t, len(w.String()), w.Len())

	empty := New("\t")
	empty.BlankLine()
	empty.WriteDocString(`"""`, "  ")
	assert.Empty(t, empty.String())
}
