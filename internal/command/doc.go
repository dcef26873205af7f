// Package command provides the console command registry and the key
// binding commands.
//
// Command text uses the interpreter's line syntax: commands are separated
// by newlines or semicolons, arguments by whitespace, double quotes group
// an argument (with no escape sequences) and "//" starts a comment.
// Separators and comment markers inside quotes are literal.
package command
