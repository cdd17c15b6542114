package level

// thresholds holds the locked cumulative minute totals needed to reach each
// level: index i is the floor for level i+1. The published table carried two
// entries for levels 98 and 99 (615420, 660180) above the locked level-100
// floor of 600000, which made them unreachable; those two are re-spaced
// evenly between the level-97 floor and 600000 to keep the table strictly
// increasing. 600000 remains the level-100 floor.
var thresholds = [100]int{
	0, 20, 40, 70, 110, 160, 220, 290, 370, 460, 560, 670, 790, 920, 1060, 1210, 1370, 1540, 1720, 1910,
	2110, 2320, 2540, 2770, 3010, 3260, 3520, 3790, 4070, 4360, 4660, 4970, 5290, 5620, 5960, 6310, 6670, 7040, 7420, 7810,
	8210, 8620, 9040, 9470, 9910, 10360, 10820, 11290, 11770, 12260, 14280, 16420, 18680, 21060, 23560, 26180, 28920, 31780, 34760, 37860,
	41080, 44420, 47880, 51460, 55160, 58980, 62920, 66980, 71160, 75460, 82180, 89080, 96160, 103420, 110860, 118480, 126280, 134260, 142420, 150760,
	165180, 179980, 195160, 210720, 226660, 242980, 259680, 276760, 294220, 312060, 344660, 378780, 414420, 451580, 490260, 530460, 572180, 581460, 590730, 600000,
}

// MaxLevel is the progression ceiling.
const MaxLevel = 100

// stageNames cover three consecutive levels each. Levels beyond the first
// pass (55-99) cycle through the same names; level 100 has its own title.
var stageNames = [18]string{
	"🌱 Acorn Tuner",
	"🐿️ Nut Collector",
	"🎶 Hollow Log Drummer",
	"🍂 Leaf Flute Player",
	"🌿 Sprout Songweaver",
	"🦊 Woodland Harpist",
	"🪵 Log String Plucker",
	"🌲 Pine Melody Maker",
	"🐇 Hare Tempo Keeper",
	"🦉 Night Owl Chanter",
	"🍄 Mushroom Chord Shaper",
	"🕊️ Sky Note Messenger",
	"🌳 Elder Tree Harmonist",
	"🐺 Howling Harmony Maker",
	"🎼 Symphony of the Grove",
	"🦅 Wind Song Oracle",
	"🪶 Feathered Lyric Sage",
	"🌌 Starwood Virtuoso",
}

const maxLevelName = "🐉 Mythic Squirrel Maestro"
