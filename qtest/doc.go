// Package qtest implements a line-oriented command interpreter that exercises the string
// queue, checks the results of every operation and accounts for every allocated element.
//
// Each input line holds one command followed by its arguments; '#' starts a comment.
// Commands operate on the current queue; several queues can be kept at once and are
// switched with "prev" and "next". Run "help" for the list of commands.
//
// Usage Example:
//
//	it, _ := qtest.New(os.Stdout)
//	err := it.Run(strings.NewReader("new\nit b\nih a\nsort\nshow\nfree\n"))
//
// Every failed check counts as an error; the interpreter stops once the error limit is
// reached. At the end all queues are freed and any block still allocated is reported.
package qtest
