// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (in-memory filesystem)
// PURPOSE: Test topic discovery, lookup, rendering and the help
// command wiring

package topics_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/molssi-seamm/anistep/pkg/cobrax/topics"
	"github.com/molssi-seamm/anistep/pkg/testutil"
	"github.com/spf13/cobra"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"step-files.md":      {Data: []byte("# Step Files\n\nHow runs are described.")},
		"executors.md":       {Data: []byte("# Executors\n\nWhere the worker runs.")},
		"notes.txt":          {Data: []byte("Plain notes")},
		"ignored.json":       {Data: []byte(`{"skip": true}`)},
		"advanced/tuning.md": {Data: []byte("# Tuning\n\nAdvanced knobs.")},
	}
}

func TestLoadDefaultExtensions(t *testing.T) {
	m := topics.New(topicFS())
	testutil.AssertNoError(t, m.Load())

	tests := []struct {
		name   string
		exists bool
	}{
		{"step-files", true},
		{"executors", true},
		{"notes", true},
		{"tuning", true}, // subdirectories are scanned
		{"ignored", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.Get(tt.name)
			testutil.AssertEqual(t, tt.exists, ok)
		})
	}
}

func TestLoadCustomExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"guide.rst": {Data: []byte("Guide content")},
		"guide.md":  {Data: []byte("# Guide")},
	}

	m := topics.NewWithOptions(fsys, topics.Options{Extensions: []string{".rst"}})
	testutil.AssertNoError(t, m.Load())

	topic, ok := m.Get("guide")
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, "Guide content", topic.Content)
	testutil.AssertEqual(t, 1, len(m.List()))
}

func TestLoadNilFilesystem(t *testing.T) {
	m := topics.New(nil)
	testutil.AssertNoError(t, m.Load())
	testutil.AssertEqual(t, 0, len(m.List()))
}

func TestGetFlagSpelling(t *testing.T) {
	m := topics.New(topicFS())
	testutil.AssertNoError(t, m.Load())

	tests := []struct {
		input  string
		exists bool
	}{
		{"executors", true},
		{"--executors", true},
		{"-executors", true},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := m.Get(tt.input)
			testutil.AssertEqual(t, tt.exists, ok)
			if ok {
				testutil.AssertEqual(t, "executors", topic.Name)
			}
		})
	}
}

func TestListSorted(t *testing.T) {
	m := topics.New(topicFS())
	testutil.AssertNoError(t, m.Load())

	names := m.List()
	testutil.AssertEqual(t, []string{"executors", "notes", "step-files", "tuning"}, names)
}

func TestHelpTopicOutput(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	testutil.AssertNoError(t, topics.Initialize(root, topicFS()))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help", "step-files"})
	testutil.AssertNoError(t, root.Execute())
	testutil.AssertContains(t, buf.String(), "How runs are described.")
}

func TestHelpTopicsListing(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	testutil.AssertNoError(t, topics.Initialize(root, topicFS()))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help", "topics"})
	testutil.AssertNoError(t, root.Execute())

	out := buf.String()
	testutil.AssertContains(t, out, "Available help topics:")
	testutil.AssertContains(t, out, "executors")
	testutil.AssertContains(t, out, "step-files")
	testutil.AssertContains(t, out, "Use 'app help <topic>'")

	if strings.Index(out, "executors") > strings.Index(out, "step-files") {
		t.Errorf("expected alphabetical topic listing, got:\n%s", out)
	}
}

func TestHelpCommandReplacesDefault(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	testutil.AssertNoError(t, topics.Initialize(root, topicFS()))

	helpCmd, _, err := root.Find([]string{"help"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpFallsBackToCommandHelp(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run a calculation",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	testutil.AssertNoError(t, topics.Initialize(root, topicFS()))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help", "run"})
	testutil.AssertNoError(t, root.Execute())
	testutil.AssertContains(t, buf.String(), "Run a calculation")
}

func TestPlainRendererPassthrough(t *testing.T) {
	r := &topics.PlainRenderer{}
	content := "# Heading\n\nBody"
	testutil.AssertEqual(t, content, r.Render(content, ".md"))
}

func TestGlamourRendererNonMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	content := "plain text content"
	testutil.AssertEqual(t, content, r.Render(content, ".txt"))
}

func TestGlamourRendererMarkdown(t *testing.T) {
	r := topics.NewGlamourRenderer()
	out := r.Render("# Executors\n\nBody text.", ".md")
	testutil.AssertContains(t, out, "Executors")
	testutil.AssertContains(t, out, "Body text.")
}
