package options

import (
	"fmt"
	"sort"
)

// FlatNode — строка таблицы option_nodes до сборки в дерево.
type FlatNode struct {
	Node
	ParentID  string
	SortOrder int
}

// BuildTree собирает дерево из плоских строк. Пока собираем, связи держим
// индексами строк; на выходе обычные вложенные Children, глубина любая.
// Строка с несуществующим родителем или замкнутая в цикл — ошибка данных.
func BuildTree(rows []FlatNode) ([]Node, error) {
	idx := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, dup := idx[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %s", ErrNodeConfig, r.ID)
		}
		idx[r.ID] = i
	}

	children := make(map[string][]int, len(rows))
	var roots []int
	for i, r := range rows {
		if r.ParentID == "" {
			roots = append(roots, i)
			continue
		}
		if _, ok := idx[r.ParentID]; !ok {
			return nil, fmt.Errorf("%w: node %s has unknown parent %s", ErrNodeConfig, r.ID, r.ParentID)
		}
		children[r.ParentID] = append(children[r.ParentID], i)
	}

	byOrder := func(ids []int) {
		sort.SliceStable(ids, func(a, b int) bool { return rows[ids[a]].SortOrder < rows[ids[b]].SortOrder })
	}

	built := 0
	var build func(i int) Node
	build = func(i int) Node {
		built++
		n := rows[i].Node
		n.Children = nil
		kids := children[n.ID]
		byOrder(kids)
		for _, k := range kids {
			n.Children = append(n.Children, build(k))
		}
		return n
	}

	byOrder(roots)
	out := make([]Node, 0, len(roots))
	for _, i := range roots {
		out = append(out, build(i))
	}

	if built != len(rows) {
		return nil, fmt.Errorf("%w: %d node(s) unreachable from roots (cycle?)", ErrNodeConfig, len(rows)-built)
	}
	return out, nil
}
