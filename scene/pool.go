package scene

import "sync"

// candidatePool is a pool of reusable broad phase candidate lists.
var candidatePool = sync.Pool{
	New: func() interface{} {
		s := make([]*Collider, 0, 32)
		return &s
	},
}

func getCandidates() *[]*Collider {
	list := candidatePool.Get().(*[]*Collider)
	*list = (*list)[:0]
	return list
}

func putCandidates(list *[]*Collider) {
	if list != nil {
		clear(*list)
		*list = (*list)[:0]
		candidatePool.Put(list)
	}
}
