// Package parawalk walks a directory tree with directory reads spread
// across a pool, while guaranteeing the caller observes entries in
// exactly the order a plain sequential depth-first walk would produce
// them. Construct a walk with New, configure it with the Walk builder
// methods, and consume it once with Iter or Seq:
//
//	it := parawalk.New("/var/log").MaxDepth(3).Sort(parawalk.SortName).Iter()
//	for {
//		entry, ok := it.Next()
//		if !ok {
//			break
//		}
//		if entry.Err != nil {
//			log.Printf("%v", entry.Err)
//			continue
//		}
//		fmt.Println(entry.Value.Path())
//	}
//
// Directory reads happen in parallel and ahead of where the caller has
// read to; a wide or deep tree can therefore hold many directories'
// worth of entries resident in memory at once. There is no explicit
// limit on how far ahead of the consumer production is allowed to run.
package parawalk
