// Package search finds messages in a filter result that match a regular
// expression. A message matches when the expression matches its payload
// text or any of its app, context and ECU ids.
package search
