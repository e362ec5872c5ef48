// Package pandoc wraps pandoc CLI invocations that turn intermediate
// documents into Markdown.
package pandoc
