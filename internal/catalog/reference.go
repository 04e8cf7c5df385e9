package catalog

var defaultRoles = []Group{
	{Name: "Tank", Members: []string{
		"Doomfist", "D.Va", "Ramattra", "Reinhardt", "Roadhog", "Sigma", "Winston", "Zarya",
	}},
	{Name: "DPS", Members: []string{
		"Ashe", "Bastion", "Cassidy", "Echo", "Freja", "Genji", "Hanzo", "Junkrat", "Mei",
		"Pharah", "Reaper", "Sojourn", "Soldier: 76", "Sombra", "Symmetra",
		"Torbjörn", "Tracer", "Venture", "Widowmaker",
	}},
	{Name: "Support", Members: []string{
		"Ana", "Baptiste", "Brigitte", "Illari", "Kiriko",
		"Lifeweaver", "Lucio", "Mercy", "Moira", "Zenyatta",
	}},
}

var defaultGamemodes = []Group{
	{Name: "Control", Members: []string{
		"Antarctic Peninsula", "Busan", "Ilios", "Lijiang Tower", "Nepal", "Oasis", "Samoa",
	}},
	{Name: "Escort", Members: []string{
		"Circuit Royal", "Dorado", "Havana", "Junkertown", "Rialto", "Route 66",
		"Shambali Monastery", "Watchpoint: Gibraltar",
	}},
	{Name: "Push", Members: []string{
		"New Queen Street", "Colosseo", "Esperança", "Runasapi",
	}},
	{Name: "Hybrid", Members: []string{
		"Blizzard World", "Eichenwalde", "Hollywood", "King's Row", "Midtown", "Numbani", "Paraíso",
	}},
	{Name: "Flashpoint", Members: []string{
		"New Junk City", "Suravasa",
	}},
}

var defaultRankTiers = []string{
	"Bronze", "Silver", "Gold", "Platinum", "Diamond", "Master", "Grandmaster", "Champion",
}
