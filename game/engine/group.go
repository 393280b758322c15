package engine

// NewVisited allocates a visited matrix matching the current grid, indexed [row][col].
// Grids grow on insertion, so allocate a fresh one for every scoring pass.
func NewVisited(b *Board) [][]bool {
	v := make([][]bool, b.Height())
	for y := range v {
		v[y] = make([]bool, b.Width())
	}
	return v
}

func inVisited(visited [][]bool, p Position) bool {
	return p.Y >= 0 && p.Y < len(visited) && p.X >= 0 && p.X < len(visited[p.Y])
}

// SearchBiggestGroup counts the orthogonally connected cells holding species a
// that contain (x, y), marking them in visited. Grid adjacency is used on every
// topology. It returns 0 when the start cell is visited or does not match.
func (b *Board) SearchBiggestGroup(x, y int, a Animal, visited [][]bool) int {
	start := Position{X: x, Y: y}
	if !inVisited(visited, start) || visited[y][x] || !b.HasAnimal(start, a) {
		return 0
	}
	visited[y][x] = true
	stack := []Position{start}
	size := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range SquareNeighbors(p) {
			if !inVisited(visited, n) || visited[n.Y][n.X] || !b.HasAnimal(n, a) {
				continue
			}
			visited[n.Y][n.X] = true
			stack = append(stack, n)
		}
	}
	return size
}

// GroupSizes returns the size of every orthogonal group of species a, scanning row by row
func (b *Board) GroupSizes(a Animal) []int {
	visited := NewVisited(b)
	var sizes []int
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if n := b.SearchBiggestGroup(x, y, a, visited); n > 0 {
				sizes = append(sizes, n)
			}
		}
	}
	return sizes
}

// TopologyGroups returns the groups of species a connected through topology
// neighbors, each as a list of positions
func (b *Board) TopologyGroups(a Animal) [][]Position {
	visited := NewVisited(b)
	var groups [][]Position
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := Position{X: x, Y: y}
			if visited[y][x] || !b.HasAnimal(p, a) {
				continue
			}
			visited[y][x] = true
			group := []Position{}
			stack := []Position{p}
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				group = append(group, cur)
				for _, n := range b.Neighbors(cur) {
					if !inVisited(visited, n) || visited[n.Y][n.X] || !b.HasAnimal(n, a) {
						continue
					}
					visited[n.Y][n.X] = true
					stack = append(stack, n)
				}
			}
			groups = append(groups, group)
		}
	}
	return groups
}
