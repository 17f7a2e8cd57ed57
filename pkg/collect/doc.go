// Package collect gathers a submission interactively on the terminal, one
// prompt per form field.
package collect
