// Package hashtable implements a fixed-size chained hash index keyed by strings.
//
// A [Table] owns N buckets, each a [ds.List]. A key is routed to exactly one
// bucket with DJB2 reduced modulo N; N never changes after [New].
//
//	t, err := hashtable.New[*User](64)
//	if err != nil {
//	    return err
//	}
//	t.Insert("user:1", u)
//	u, ok := t.Find("user:1")
//
// Values are stored as given; the table never inspects them. Destructor
// callbacks passed to [Table.DeleteAll] and [Table.RemoveAny] are how callers
// release values they own.
//
// A Table is not safe for concurrent use.
package hashtable
