/*
Package prompter provides terminal implementations of ports.Prompter.

All prompters share a Terminal, which owns the input source (readline on a TTY, buffered
lines otherwise, or JSON lines for machine drivers) and renders step headers. While a
prompt is waiting, typing ":back" (or "<") goes back one step and ":exit" (or ":q") asks to
leave the flow. Ctrl+C on a TTY is the same as ":exit"; end of input leaves without asking.
*/
package prompter
