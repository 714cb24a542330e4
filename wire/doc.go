/*
Package wire contains the Notification protocol wire value types.

A Command is a verb plus its ordered arguments as delivered by the
transport's command splitter; a Message is a parsed application
message delivered inside a MSG command. Both are produced by
transport-side collaborators and consumed by the session state
machine.
*/
package wire
