package util

import "github.com/PuerkitoBio/goquery"

// PrecedingMatch returns the closest element matching sel that comes before
// item in document order, or nil. Ancestors of item count as preceding.
func PrecedingMatch(item *goquery.Selection, sel string) *goquery.Selection {
	for cur := item.First(); cur.Length() > 0; cur = cur.Parent() {
		prevs := cur.PrevAll()
		for i := 0; i < prevs.Length(); i++ {
			p := prevs.Eq(i)
			if inner := p.Find(sel); inner.Length() > 0 {
				return inner.Last()
			}
			if p.Is(sel) {
				return p
			}
		}
		if parent := cur.Parent(); parent.Length() > 0 && parent.Is(sel) {
			return parent
		}
	}
	return nil
}

// FollowingMatch returns the first element matching sel that comes after
// node in document order, or nil.
func FollowingMatch(node *goquery.Selection, sel string) *goquery.Selection {
	node = node.First()
	if inner := node.Find(sel); inner.Length() > 0 {
		return inner.First()
	}
	for cur := node; cur.Length() > 0; cur = cur.Parent() {
		nexts := cur.NextAll()
		for i := 0; i < nexts.Length(); i++ {
			n := nexts.Eq(i)
			if n.Is(sel) {
				return n
			}
			if inner := n.Find(sel); inner.Length() > 0 {
				return inner.First()
			}
		}
	}
	return nil
}
