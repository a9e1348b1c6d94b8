// Package markdown converts a notes directory into publishable Markdown.
// Each note has its front matter finalized (timestamps, abbrlink,
// visibility) and its body passed through a filter chain before being
// written as YAML front matter plus GFM.
package markdown
