// Package rules provides the built-in formatting rules for sclangfmt.
//
// Importing the package registers every rule with format.DefaultRegistry
// and supplies rule metadata to config templates.
//
// # Rule Stages
//
// Rules run in stage order, then by ID:
//
//   - Structural:
//
//   - SC101: block-brace-layout - Opening braces join the line that introduces them; } else { lines are joined
//
//   - SC102: arg-to-pipe-header - arg declarations become |a, b| headers
//
//   - SC103: pipe-header-on-brace-line - Pipe headers sit on the brace line
//
//   - SC104: trailing-closures - if and do take trailing blocks
//
//   - SC105: iteration-trailing-closures - Iterators and while take trailing blocks
//
//   - SC106: pipe-param-commas - Header parameters are comma separated
//
//   - SC107: dot-chain-layout - Split chains start the line with the dot
//
//   - Header:
//
//   - SC201: pipe-default-parens - Computed parameter defaults are parenthesized
//
//   - Spacing:
//
//   - SC301: comma-spacing - No space before a comma, one after
//
//   - SC302: assignment-spacing - One space around =
//
//   - SC303: semicolon-spacing - No space before a semicolon
//
//   - SC304: dot-spacing - No spaces around a message dot
//
//   - SC305: block-padding - One space inside one-line braces
//
//   - SC306: binary-operator-spacing - One space around binary operators (off by default)
//
//   - SC307: colon-spacing - key: value
//
//   - SC308: keyword-paren-spacing - if (, while (
//
//   - SC309: call-paren-spacing - foo(, a[
//
//   - SC310: paren-padding - No spaces just inside ( ) and [ ]
//
//   - SC311: block-brace-spacing - One space before a trailing {
//
//   - SC312: declaration-keyword-spacing - One space after var and arg
//
//   - SC313: pipe-header-spacing - { |a, b|
//
//   - SC314: pipe-body-spacing - |a| body
//
//   - SC315: inline-comment-spacing - code;  // comment
//
//   - Indent:
//
//   - SC401: indent-style - Tabs or spaces as configured
//
//   - SC402: nesting-indent - One level per open bracket
//
//   - SC403: inline-whitespace - Collapse runs of inline whitespace
//
//   - Layout:
//
//   - SC501: if-trailing-compact - Collapse a multi-line if that fits
//
//   - SC502: if-trailing-expand - Expand a one-line if that overflows
//
//   - SC503: collection-compact - Collapse a multi-line array or event that fits
//
//   - SC504: collection-expand - Expand a one-line array or event that overflows
//
//   - SC505: array-multiline - One element per line in multi-line arrays
//
//   - SC506: event-multiline - One key per line in multi-line events
//
//   - Cleanup:
//
//   - SC601: no-semicolon-before-brace - No ; right before }
//
//   - SC602: trailing-whitespace - No trailing spaces
//
//   - SC603: final-newline - Exactly one newline at end of file
//
// # Adding Rules
//
// A rule embeds format.BaseRule, implements Apply, and is added to
// RegisterAll. Apply reads only the snapshot it is given and returns
// disjoint edits; the pipeline applies them and reparses before the next
// rule runs.
package rules
