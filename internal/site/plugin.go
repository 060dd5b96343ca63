package site

// Plugins extend the build pipeline through optional hook interfaces, in
// the order they are registered. A plugin implements whichever hooks it
// needs; the builder type-asserts per hook.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string
}

// FilesRewriter rewrites the discovered descriptor set before any page is
// built. Used to extend classification beyond the host's generic rule.
type FilesRewriter interface {
	Plugin
	RewriteFiles(files []File) ([]File, error)
}

// SourceReader may substitute a page's effective source content in place of
// the raw file read. Returning handled=false falls through to the next
// reader and finally to the plain file read.
type SourceReader interface {
	Plugin
	ReadSource(f File) (content []byte, handled bool, err error)
}

// MarkdownTransformer post-processes a page's Markdown after its source has
// been obtained and before HTML conversion.
type MarkdownTransformer interface {
	Plugin
	TransformMarkdown(markdown string, f File) (string, error)
}
