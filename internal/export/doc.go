// Package export renders batches of wiki pages to Markdown and packages the
// results.
//
// # Rendering
//
// An Exporter renders titles in parallel and keeps their order:
//
//	exp := export.New(renderer, store, export.WithNote("exported 2024-03-01"))
//	results, err := exp.Render(ctx, titles)
//
// Missing pages and pages whose tree is malformed are logged and skipped;
// one bad page never stops the batch.
//
// # Output Formats
//
//   - Concatenate: one document, pages separated by a \newpage break
//     that Pandoc turns into a page break
//   - WriteArchive: a zip file with one <filename>.md entry per page
//   - WriteFiles: one <filename>.md file per page in a directory
//   - FormatJSON: a JSON array of {title, filename, markdown}
//
// File names come from the dialect's Filename rule, so Obsidian titles
// containing "/" become nested folders and Logseq titles use "___".
//
// # Splitting
//
// Split reverses Concatenate: it cuts a document at each \newpage and
// names each part after the title in its front matter:
//
//	parts, err := export.Split(doc)
//	export.WriteParts(parts, "/path/to/dir", false)
package export
