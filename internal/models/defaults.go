package models

const placeholderImage = "/placeholder.svg?height=300&width=400"

// DefaultUsers returns a fresh copy of the seed roster.
func DefaultUsers() []User {
	return []User{
		{
			ID:           "1",
			FirstName:    "Juan",
			LastName:     "Pérez",
			Email:        "juan@example.com",
			Username:     "juanperez",
			Password:     "123456",
			Role:         RoleAdmin,
			Plan:         PlanPaid,
			RegisteredAt: "2024-01-15",
		},
		{
			ID:           "2",
			FirstName:    "María",
			LastName:     "González",
			Email:        "maria@example.com",
			Username:     "mariagonzalez",
			Password:     "123456",
			Role:         RoleUser,
			Plan:         PlanFree,
			RegisteredAt: "2024-02-20",
		},
	}
}

// DefaultPatos returns a fresh copy of the seed catalog.
func DefaultPatos() []Pato {
	return []Pato{
		{
			ID:             "1",
			Name:           "Pato Barcino",
			ScientificName: "Anas flavirostris",
			Description:    "Pato de tamaño mediano, muy común en Argentina. Se caracteriza por su plumaje moteado y su adaptabilidad a diversos ambientes acuáticos.",
			Behavior:       "Gregario, forma bandadas numerosas. Muy activo durante el amanecer y atardecer.",
			Habitat:        "Lagunas, esteros, ríos de corriente lenta y ambientes palustres",
			Plumage:        "Dorso pardo moteado, vientre blanquecino con manchas oscuras, pico amarillo",
			Diet:           "Omnívoro: semillas, plantas acuáticas, invertebrados",
			Group:          "Anas",
			Image:          placeholderImage,
			Sound:          "https://example.com/sounds/pato-barcino.mp3",
		},
		{
			ID:             "2",
			Name:           "Pato Sirirí Pampa",
			ScientificName: "Dendrocygna viduata",
			Description:    "Pato silbador de aspecto elegante, con cuello largo y patas largas. Es una especie migratoria que visita Argentina.",
			Behavior:       "Muy gregario, forma grandes bandadas. Emite silbidos característicos en vuelo.",
			Habitat:        "Lagunas profundas, esteros y humedales con vegetación abundante",
			Plumage:        "Cabeza y cuello blancos con corona negra, dorso castaño, flancos rayados",
			Diet:           "Principalmente vegetariano: semillas, brotes tiernos, algas",
			Group:          "Dendrocygna",
			Image:          placeholderImage,
			Sound:          "https://example.com/sounds/siriri-pampa.mp3",
		},
		{
			ID:             "3",
			Name:           "Pato Picazo",
			ScientificName: "Netta peposaca",
			Description:    "Pato buceador robusto, endémico de Sudamérica. Los machos presentan un llamativo plumaje nupcial.",
			Behavior:       "Buceador experto, puede sumergirse hasta 3 metros de profundidad.",
			Habitat:        "Lagunas profundas, embalses y grandes cuerpos de agua",
			Plumage:        "Macho: cabeza negra con reflejos verdes, pecho castaño. Hembra: parda con vientre claro",
			Diet:           "Moluscos, crustáceos, plantas acuáticas sumergidas",
			Group:          "Netta",
			Image:          placeholderImage,
			Sound:          "https://example.com/sounds/pato-picazo.mp3",
		},
		{
			ID:             "4",
			Name:           "Pato Maicero",
			ScientificName: "Anas georgica",
			Description:    "Pato de gran tamaño, común en la región patagónica y centro de Argentina. Muy adaptable a diferentes ambientes.",
			Behavior:       "Territorial durante la época reproductiva, forma parejas estables.",
			Habitat:        "Lagos, lagunas, ríos y costas marinas",
			Plumage:        "Plumaje general pardo con tonos rojizos, espejo alar verde brillante",
			Diet:           "Omnívoro: vegetación acuática, invertebrados, pequeños peces",
			Group:          "Anas",
			Image:          placeholderImage,
			Sound:          "https://example.com/sounds/pato-maicero.mp3",
		},
		{
			ID:             "5",
			Name:           "Pato Cuchara",
			ScientificName: "Spatula platalea",
			Description:    "Pato distintivo por su pico en forma de cuchara, utilizado para filtrar el agua en busca de alimento.",
			Behavior:       "Nada en círculos para crear corrientes que concentren el alimento.",
			Habitat:        "Lagunas someras, bañados y humedales con agua poco profunda",
			Plumage:        "Macho: cabeza verde, pecho blanco, flancos castaños. Hembra: moteada en tonos pardos",
			Diet:           "Filtrador: plancton, semillas pequeñas, invertebrados microscópicos",
			Group:          "Spatula",
			Image:          placeholderImage,
			Sound:          "https://example.com/sounds/pato-cuchara.mp3",
		},
	}
}
