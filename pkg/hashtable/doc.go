/*
Package hashtable provides a string-keyed, open-addressing hash table with
linear probing and automatic growth.

A Table returns a fixed default value for keys it has never seen, which makes
it a natural counting store:

	counts, _ := hashtable.New(57, 0)
	_ = counts.Update("ab", counts.Lookup("ab")+1)

The table doubles its capacity whenever an insert brings the load factor to
one half, so a probe always finds an empty slot. Keys are hashed with a
polynomial rolling hash that is reduced modulo the current capacity, which
means every entry is rehashed when the table grows.

A Table is not safe for concurrent use. Callers sharing one between
goroutines must serialize access themselves.
*/
package hashtable
