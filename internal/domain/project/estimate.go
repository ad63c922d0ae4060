package project

// PriceRooms fills in derived room figures: square footage from the
// dimensions, and each material and labor line's amount.
func PriceRooms(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		r.SquareFeet = r.Width * r.Length
		r.Materials = append([]RoomMaterial(nil), r.Materials...)
		for j := range r.Materials {
			r.Materials[j].Amount = r.Materials[j].Quantity * r.Materials[j].Rate
		}
		r.Labor = append([]RoomLabor(nil), r.Labor...)
		for j := range r.Labor {
			r.Labor[j].Amount = r.Labor[j].Hours * r.Labor[j].Rate
		}
		if r.Materials == nil {
			r.Materials = []RoomMaterial{}
		}
		if r.Labor == nil {
			r.Labor = []RoomLabor{}
		}
		out[i] = r
	}
	return out
}

func RoomCost(r Room) float64 {
	var total float64
	for _, m := range r.Materials {
		total += m.Amount
	}
	for _, l := range r.Labor {
		total += l.Amount
	}
	if r.DemolitionCost != nil {
		total += *r.DemolitionCost
	}
	if r.WasteBinCost != nil {
		total += *r.WasteBinCost
	}
	return total
}

// Estimate sums every priced room and additional cost.
func Estimate(rooms []Room, costs []AdditionalCost) float64 {
	var total float64
	for _, r := range rooms {
		total += RoomCost(r)
	}
	for _, c := range costs {
		total += c.Amount
	}
	return total
}
