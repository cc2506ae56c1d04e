package explorer

import (
	"bytes"
	"fmt"
	"strings"

	"ner-explorer/internal/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Report summarises a loaded dataset: its statistics, how many documents
// carry each label, and a sample of entities.
type Report struct {
	Dataset string
	Stats   core.Stats
	Labels  []LabelCount
	Sample  []EntityRow
}

type LabelCount struct {
	Label     string
	Documents int
}

func NewReport(dataset string, corpus *core.Corpus, sample []EntityRow) Report {
	report := Report{Dataset: dataset, Stats: corpus.Stats, Sample: sample}
	for _, label := range corpus.EntityIndex.Labels() {
		report.Labels = append(report.Labels, LabelCount{
			Label:     label,
			Documents: len(corpus.EntityIndex[label]),
		})
	}
	return report
}

func (r Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Understanding the dataset: %s\n\n", escapeMarkdown(r.Dataset))
	sb.WriteString("| statistic | value |\n|---|---:|\n")
	fmt.Fprintf(&sb, "| documents | %d |\n", r.Stats.DocCount)
	fmt.Fprintf(&sb, "| misaligned documents | %d |\n", r.Stats.UnalignedCount)
	fmt.Fprintf(&sb, "| documents without entities | %d |\n\n", r.Stats.EmptyDocs)

	if len(r.Labels) > 0 {
		sb.WriteString("## Documents per entity\n\n| entity | documents |\n|---|---:|\n")
		for _, lc := range r.Labels {
			fmt.Fprintf(&sb, "| %s | %d |\n", escapeMarkdown(lc.Label), lc.Documents)
		}
		sb.WriteString("\n")
	}

	if len(r.Sample) > 0 {
		fmt.Fprintf(&sb, "## Sampled entities (%d)\n\n", len(r.Sample))
		sb.WriteString("| entity | value | start_word | doc_span |\n|---|---|---:|---|\n")
		for _, row := range r.Sample {
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n",
				escapeMarkdown(row.Entity), escapeMarkdown(row.Value), row.StartWord, escapeMarkdown(row.DocSpan))
		}
	}

	return sb.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("error rendering report: %w", err)
	}
	return buf.String(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
