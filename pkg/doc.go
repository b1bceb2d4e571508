// Package pkg provides the libraries behind wordcloud, a comparison of the
// vocabulary of two documents.
//
// # Overview
//
// The pkg directory is organized bottom-up:
//
//  1. [text] - Tokenization of plain text into words
//  2. [histogram] - Word counts, normalization, set operations and filters
//  3. [layout] - Placement and font size of every word
//  4. [session] - The two live histograms and the user actions on them
//  5. [render] - SVG, JSON, DOT, PNG and PDF output
//  6. [pipeline] - Orchestration (load → filter → layout → render)
//
// Supporting packages: [cache] stores rendered artifacts, [config] reads
// wordcloud.toml, [errors] defines coded errors, [observability] exposes
// hooks and [buildinfo] carries the version.
//
// # Architecture
//
//	Two text files
//	      ↓
//	[text] + [histogram] (count words per document)
//	      ↓
//	[session] (remove common, infrequent or un-shared words)
//	      ↓
//	[histogram.Normalize] + [layout] (position and size per word)
//	      ↓
//	[render] (SVG/JSON/DOT/PNG/PDF)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Doc1:    "moby.txt",
//	    Doc2:    "bartleby.txt",
//	    Actions: []string{"common", "unshared"},
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("cloud.svg", result.Artifacts["svg"], 0644)
package pkg
