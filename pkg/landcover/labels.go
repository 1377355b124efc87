package landcover

// EcoclimapSGLabels is the ECOCLIMAP-SG nomenclature, shared by the ecosg and
// esgp maps. Index zero is the no-data class; indices 24-33 are the local
// climate zones of the urban group.
var EcoclimapSGLabels = []string{
	"no data",
	"sea and oceans",
	"lakes",
	"rivers",
	"bare land",
	"bare rock",
	"permanent snow",
	"boreal broadleaf deciduous",
	"temperate broadleaf deciduous",
	"tropical broadleaf deciduous",
	"temperate broadleaf evergreen",
	"tropical broadleaf evergreen",
	"boreal needleleaf evergreen",
	"temperate needleleaf evergreen",
	"boreal needleleaf deciduous",
	"shrubs",
	"boreal grassland",
	"temperate grassland",
	"tropical grassland",
	"winter C3 crops",
	"summer C3 crops",
	"C4 crops",
	"flooded trees",
	"flooded grassland",
	"LCZ1: compact high-rise",
	"LCZ2: compact midrise",
	"LCZ3: compact low-rise",
	"LCZ4: open high-rise",
	"LCZ5: open midrise",
	"LCZ6: open low-rise",
	"LCZ7: lightweight low-rise",
	"LCZ8: large low-rise",
	"LCZ9: sparsely built",
	"LCZ10: heavy industry",
}

// EcoclimapSGHierarchy groups the ECOCLIMAP-SG labels into the coarse families
// used for aggregated scoring. Every label except no-data belongs to exactly
// one group.
var EcoclimapSGHierarchy = map[string][]string{
	"water": {
		"sea and oceans",
		"lakes",
		"rivers",
	},
	"bareland": {
		"bare land",
		"bare rock",
	},
	"snow": {
		"permanent snow",
	},
	"trees": {
		"boreal broadleaf deciduous",
		"temperate broadleaf deciduous",
		"tropical broadleaf deciduous",
		"temperate broadleaf evergreen",
		"tropical broadleaf evergreen",
		"boreal needleleaf evergreen",
		"temperate needleleaf evergreen",
		"boreal needleleaf deciduous",
	},
	"shrubs": {
		"shrubs",
	},
	"grassland": {
		"boreal grassland",
		"temperate grassland",
		"tropical grassland",
	},
	"crops": {
		"winter C3 crops",
		"summer C3 crops",
		"C4 crops",
	},
	"flooded_veg": {
		"flooded trees",
		"flooded grassland",
	},
	"urban": {
		"LCZ1: compact high-rise",
		"LCZ2: compact midrise",
		"LCZ3: compact low-rise",
		"LCZ4: open high-rise",
		"LCZ5: open midrise",
		"LCZ6: open low-rise",
		"LCZ7: lightweight low-rise",
		"LCZ8: large low-rise",
		"LCZ9: sparsely built",
		"LCZ10: heavy industry",
	},
}

var esaWorldCoverLabels = []string{
	"no data",
	"tree cover",
	"shrubland",
	"grassland",
	"cropland",
	"built-up",
	"bare / sparse vegetation",
	"snow and ice",
	"permanent water bodies",
	"herbaceous wetland",
	"mangroves",
	"moss and lichen",
}

var osoLabels = []string{
	"no data",
	"dense built-up",
	"diffuse built-up",
	"industrial and commercial areas",
	"roads",
	"rapeseed",
	"winter cereals",
	"spring cereals",
	"protein crops",
	"soy",
	"sunflower",
	"maize",
	"rice",
	"tubers and roots",
	"grassland",
	"orchards",
	"vineyards",
	"deciduous forest",
	"coniferous forest",
	"natural grassland",
	"woody moorland",
	"natural mineral surfaces",
	"beaches and dunes",
	"glaciers and snow",
	"water",
}

var cglsLabels = []string{
	"no data",
	"closed forest, evergreen needle leaf",
	"closed forest, evergreen broad leaf",
	"closed forest, deciduous needle leaf",
	"closed forest, deciduous broad leaf",
	"closed forest, mixed",
	"closed forest, other",
	"open forest, evergreen needle leaf",
	"open forest, evergreen broad leaf",
	"open forest, deciduous needle leaf",
	"open forest, deciduous broad leaf",
	"open forest, mixed",
	"open forest, other",
	"shrubs",
	"herbaceous vegetation",
	"herbaceous wetland",
	"moss and lichen",
	"bare / sparse vegetation",
	"cultivated and managed vegetation",
	"urban / built up",
	"snow and ice",
	"permanent water bodies",
	"open sea",
}

var clcLabels = []string{
	"no data",
	"continuous urban fabric",
	"discontinuous urban fabric",
	"industrial or commercial units",
	"road and rail networks",
	"port areas",
	"airports",
	"mineral extraction sites",
	"dump sites",
	"construction sites",
	"green urban areas",
	"sport and leisure facilities",
	"non-irrigated arable land",
	"permanently irrigated land",
	"rice fields",
	"vineyards",
	"fruit trees and berry plantations",
	"olive groves",
	"pastures",
	"annual crops associated with permanent crops",
	"complex cultivation patterns",
	"agriculture with natural vegetation",
	"agro-forestry areas",
	"broad-leaved forest",
	"coniferous forest",
	"mixed forest",
	"natural grasslands",
	"moors and heathland",
	"sclerophyllous vegetation",
	"transitional woodland-shrub",
	"beaches, dunes, sands",
	"bare rocks",
	"sparsely vegetated areas",
	"burnt areas",
	"glaciers and perpetual snow",
	"inland marshes",
	"peat bogs",
	"salt marshes",
	"salines",
	"intertidal flats",
	"water courses",
	"water bodies",
	"coastal lagoons",
	"estuaries",
	"sea and ocean",
}
