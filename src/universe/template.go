package universe

//Template is a seeding scene, coordinates are [x, y] pairs
type Template struct {
	Name  string
	Descr string
	Sand  [][]int
	Rock  [][]int
}

//DefaultTemplates builds the stock scenes scaled to a field of width x height
func DefaultTemplates(width int, height int) []Template {
	return []Template{
		pileTemplate(width, height),
		hourglassTemplate(width, height),
		shelfTemplate(width, height),
	}
}

//pileTemplate drops a block of sand over the middle of the field
func pileTemplate(width int, height int) Template {
	t := Template{Name: "pile", Descr: "a block of sand falling onto the floor"}
	w, h := width/4, height/3
	x0 := (width - w) / 2
	for y := 0; y < h; y++ {
		for x := x0; x < x0+w; x++ {
			t.Sand = append(t.Sand, []int{x, y})
		}
	}
	return t
}

//hourglassTemplate is a rock funnel with a one cell neck and sand above it
func hourglassTemplate(width int, height int) Template {
	t := Template{Name: "hourglass", Descr: "sand draining through a rock funnel"}
	mid := width / 2
	neck := height / 2
	for d := 1; d <= neck && d < width/2; d++ {
		y := neck - d
		t.Rock = append(t.Rock, []int{mid - d, y}, []int{mid + d, y})
		for x := mid - d + 1; x < mid+d; x++ {
			if y < neck-1 {
				t.Sand = append(t.Sand, []int{x, y})
			}
		}
	}
	return t
}

//shelfTemplate staggers rock ledges under a layer of sand
func shelfTemplate(width int, height int) Template {
	t := Template{Name: "shelf", Descr: "sand cascading down staggered rock ledges"}
	ledge := width / 3
	gap := height / 4
	if gap < 1 {
		gap = 1
	}
	for n, y := 0, gap; y < height-1; n, y = n+1, y+gap {
		x0 := 0
		if n%2 == 1 {
			x0 = width - ledge
		}
		for x := x0; x < x0+ledge; x++ {
			t.Rock = append(t.Rock, []int{x, y})
		}
	}
	for y := 0; y < 3 && y < height; y++ {
		for x := 0; x < ledge; x++ {
			t.Sand = append(t.Sand, []int{x, y})
		}
	}
	return t
}
