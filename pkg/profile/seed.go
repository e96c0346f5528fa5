package profile

// SeedPosts returns a fresh copy of the mock posts every profile starts with.
func SeedPosts() []Post {
	return []Post{
		{
			Author:      "Travaler_55672",
			Description: "Удивительный закат на Пхукете! От путешествия я получаю незабываемые эмоции!",
			ImageName:   "phuket",
			Likes:       367,
			Views:       1589,
		},
		{
			Author:      "IOS-Developer_1128",
			Description: "Новый МакБук - невероятный!",
			ImageName:   "macbook",
			Likes:       155,
			Views:       649,
		},
		{
			Author:      "I_Love_Eat",
			Description: "Домашняя пицца с моцареллой и базиликом. Рецепт в комментариях! 🍕",
			ImageName:   "pizza",
			Likes:       267,
			Views:       989,
		},
		{
			Author:      "Fitness_Coach",
			Description: "Утренняя пробежка — лучший способ начать день!",
			ImageName:   "run",
			Likes:       347,
			Views:       1459,
		},
	}
}

// PhotoNames lists the gallery pictures reachable from the photos row.
func PhotoNames() []string {
	return []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
		"fithteen", "sixteen", "seventeen", "eighteen", "nineteen", "twenty",
	}
}
