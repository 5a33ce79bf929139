/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing
algorithms around grammar analyses, item-set construction and parse
forests. These kinds of algorithms are often more straightforward to
describe as set constructions and operations than as plain slice code.

Unusually, most set operations are destructive — they mutate the receiver
in place and return it, to allow chaining during fixed-point iteration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package iteratable
