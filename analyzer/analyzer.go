// Package analyzer recognizes several independent sources concurrently.  The
// language tables are shared; every source gets its own symbol table, engine
// run and report.
package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/fantasylang/fantasy/analyzer/util"
	"github.com/fantasylang/fantasy/ast"
	"github.com/fantasylang/fantasy/parser"
	"github.com/fantasylang/fantasy/report"
)

type Source struct {
	Name    string
	Content []byte
}

type Entry struct {
	Source

	// nil if the source could not be tokenized.
	Result *parser.Result

	// Parse diagnostics followed by the analysis passes' diagnostics.
	Report *report.Report
}

// Analyze returns one entry per source, in source order.
func Analyze(
	sources []Source,
	language *parser.Language,
	separator rune,
) []*Entry {
	entries := make([]*Entry, len(sources))

	util.ParallelProcess(
		sources,
		func(idx int, source Source) {
			entries[idx] = analyze(source, language, separator)
		})

	return entries
}

func analyze(
	source Source,
	language *parser.Language,
	separator rune,
) *Entry {
	entry := &Entry{
		Source: source,
		Report: report.New(),
	}

	result, err := parser.Parse(
		parseutil.NewBufferedByteLocationReaderFromSlice(
			source.Name,
			source.Content),
		language,
		parser.Options{
			Separator: separator,
		})
	if err != nil {
		entry.Report.Error(err)
		return entry
	}

	entry.Result = result
	entry.Report.Merge(result.Report)

	if !result.Accepted || result.Program == nil {
		return entry
	}

	emitter := &parseutil.Emitter{}
	passes := [][]util.Pass[ast.Node]{
		{ValidateAstSyntax(emitter)},
	}
	util.Process(result.Program, passes, emitter.HasErrors)

	entry.Report.Error(emitter.Errors()...)

	return entry
}
