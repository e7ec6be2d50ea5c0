/*
Package iterset implements a small insertion-ordered set, used by the GLL
core to test whether a descriptor was already enqueued.

The API is Add, which reports whether an item was new, and Contains.
Items are recorded in the order they were first added; the package
offers no iteration and no set operations beyond these two.

The API is modeled after package iteratable of gorgo.
*/
package iterset
