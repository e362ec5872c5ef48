// Command docmill converts legacy flat-ODF documentation to Markdown,
// frames the results with site frontmatter, and maintains the component
// registry and conversion state journal.
package main
