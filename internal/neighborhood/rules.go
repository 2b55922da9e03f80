package neighborhood

// Rule maps a lowercase substring to a canonical neighborhood name.
type Rule struct {
	Pattern string
	Name    string
}

// nameRules is checked in order. Narrower names come before names they
// contain ("west hollywood" before "hollywood", "south pasadena" before
// "pasadena"), and incorporated cities come before "venice" so that a
// "Venice Blvd, Culver City" address stays in Culver City.
var nameRules = []Rule{
	{"west hollywood", "West Hollywood"},
	{"weho", "West Hollywood"},
	{"north hollywood", "North Hollywood"},
	{"noho", "North Hollywood"},
	{"east hollywood", "East Hollywood"},
	{"hollywood hills", "Hollywood Hills"},
	{"hollywood", "Hollywood"},
	{"beverly hills", "Beverly Hills"},
	{"beverly grove", "Beverly Grove"},
	{"santa monica", "Santa Monica"},
	{"pacific palisades", "Pacific Palisades"},
	{"marina del rey", "Marina del Rey"},
	{"playa vista", "Playa Vista"},
	{"playa del rey", "Playa del Rey"},
	{"culver city", "Culver City"},
	{"manhattan beach", "Manhattan Beach"},
	{"hermosa beach", "Hermosa Beach"},
	{"redondo beach", "Redondo Beach"},
	{"el segundo", "El Segundo"},
	{"malibu", "Malibu"},
	{"venice", "Venice"},
	{"south pasadena", "South Pasadena"},
	{"pasadena", "Pasadena"},
	{"silver lake", "Silver Lake"},
	{"silverlake", "Silver Lake"},
	{"echo park", "Echo Park"},
	{"los feliz", "Los Feliz"},
	{"atwater village", "Atwater Village"},
	{"highland park", "Highland Park"},
	{"eagle rock", "Eagle Rock"},
	{"koreatown", "Koreatown"},
	{"k-town", "Koreatown"},
	{"arts district", "Arts District"},
	{"little tokyo", "Little Tokyo"},
	{"chinatown", "Chinatown"},
	{"downtown", "Downtown"},
	{"dtla", "Downtown"},
	{"west los angeles", "West LA"},
	{"west la", "West LA"},
	{"brentwood", "Brentwood"},
	{"westwood", "Westwood"},
	{"century city", "Century City"},
	{"mid-city", "Mid-City"},
	{"mid city", "Mid-City"},
	{"mid-wilshire", "Mid-Wilshire"},
	{"larchmont", "Larchmont"},
	{"fairfax", "Fairfax"},
	{"studio city", "Studio City"},
	{"sherman oaks", "Sherman Oaks"},
	{"encino", "Encino"},
	{"glendale", "Glendale"},
	{"burbank", "Burbank"},
	{"long beach", "Long Beach"},
	{"san pedro", "San Pedro"},
}

// zipTable maps five-digit ZIP codes to neighborhoods.
var zipTable = map[string]string{
	"90012": "Downtown",
	"90013": "Downtown",
	"90014": "Downtown",
	"90015": "Downtown",
	"90017": "Downtown",
	"90071": "Downtown",
	"90021": "Arts District",
	"90028": "Hollywood",
	"90038": "Hollywood",
	"90068": "Hollywood Hills",
	"90029": "East Hollywood",
	"90046": "West Hollywood",
	"90069": "West Hollywood",
	"90048": "Beverly Grove",
	"90036": "Fairfax",
	"90004": "Larchmont",
	"90005": "Koreatown",
	"90006": "Koreatown",
	"90010": "Koreatown",
	"90020": "Koreatown",
	"90019": "Mid-City",
	"90026": "Echo Park",
	"90039": "Silver Lake",
	"90027": "Los Feliz",
	"90042": "Highland Park",
	"90041": "Eagle Rock",
	"90210": "Beverly Hills",
	"90211": "Beverly Hills",
	"90212": "Beverly Hills",
	"90401": "Santa Monica",
	"90402": "Santa Monica",
	"90403": "Santa Monica",
	"90404": "Santa Monica",
	"90405": "Santa Monica",
	"90272": "Pacific Palisades",
	"90291": "Venice",
	"90292": "Marina del Rey",
	"90094": "Playa Vista",
	"90293": "Playa del Rey",
	"90230": "Culver City",
	"90232": "Culver City",
	"90266": "Manhattan Beach",
	"90254": "Hermosa Beach",
	"90277": "Redondo Beach",
	"90278": "Redondo Beach",
	"90245": "El Segundo",
	"90265": "Malibu",
	"90049": "Brentwood",
	"90024": "Westwood",
	"90025": "West LA",
	"90064": "West LA",
	"90067": "Century City",
	"91601": "North Hollywood",
	"91602": "North Hollywood",
	"91604": "Studio City",
	"91403": "Sherman Oaks",
	"91423": "Sherman Oaks",
	"91436": "Encino",
	"91030": "South Pasadena",
	"91101": "Pasadena",
	"91103": "Pasadena",
	"91105": "Pasadena",
	"91106": "Pasadena",
	"91201": "Glendale",
	"91203": "Glendale",
	"91205": "Glendale",
	"91502": "Burbank",
	"91505": "Burbank",
	"90731": "San Pedro",
	"90802": "Long Beach",
	"90803": "Long Beach",
	"90804": "Long Beach",
}

// streetRules are the last resort before the city fallback.
var streetRules = []Rule{
	{"abbot kinney", "Venice"},
	{"rodeo dr", "Beverly Hills"},
	{"ocean ave", "Santa Monica"},
	{"pacific coast hwy", "Malibu"},
	{"larchmont blvd", "Larchmont"},
	{"hillhurst", "Los Feliz"},
	{"sunset blvd", "Hollywood"},
	{"melrose ave", "Fairfax"},
	{"ventura blvd", "Sherman Oaks"},
	{"colorado blvd", "Pasadena"},
	{"wilshire blvd", "Mid-Wilshire"},
}
