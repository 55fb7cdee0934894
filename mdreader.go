// Package mdreader reads Markdown source documents with embedded front matter and produces their
// rendered HTML together with normalized metadata.
//
// Two front matter dialects are supported: line-based "name: value" pairs between "+++" or "---"
// delimiters, and TOML between "+++" delimiters. A ReaderTable maps file extensions to dialects.
// Readers renders one document at a time; Generator reads a whole content tree in parallel with one
// Readers per worker.
package mdreader
