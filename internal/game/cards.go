package game

import "github.com/dividing-by-zaro/ugg-poetry/internal/models"

// cardPool is the fixed set of clue cards. The partial hint is worth 1 point,
// the full hint 3. Decks are shuffled copies of this pool; once a game burns
// through all of them, a fresh shuffle is dealt and repeats are allowed.
var cardPool = []models.Card{
	{Partial: "Sun", Full: "Sun Burn"},
	{Partial: "Moon", Full: "Full Moon"},
	{Partial: "Fire", Full: "Camp Fire"},
	{Partial: "Rock", Full: "Rock Band"},
	{Partial: "Cave", Full: "Cave Man"},
	{Partial: "Bear", Full: "Bear Hug"},
	{Partial: "Fish", Full: "Fish Stick"},
	{Partial: "Bird", Full: "Bird Bath"},
	{Partial: "Tree", Full: "Tree House"},
	{Partial: "Rain", Full: "Rain Dance"},
	{Partial: "Snow", Full: "Snow Ball Fight"},
	{Partial: "Ice", Full: "Ice Cream Cone"},
	{Partial: "Star", Full: "Shooting Star"},
	{Partial: "Dog", Full: "Hot Dog"},
	{Partial: "Cat", Full: "Cat Nap"},
	{Partial: "Egg", Full: "Egg Hunt"},
	{Partial: "Milk", Full: "Milk Shake"},
	{Partial: "Bone", Full: "Funny Bone"},
	{Partial: "Club", Full: "Book Club"},
	{Partial: "Spear", Full: "Spear Fishing"},
	{Partial: "Wheel", Full: "Ferris Wheel"},
	{Partial: "Mud", Full: "Mud Bath"},
	{Partial: "Sky", Full: "Sky Dive"},
	{Partial: "Sea", Full: "Sea Horse"},
	{Partial: "Sand", Full: "Sand Castle"},
	{Partial: "Wind", Full: "Wind Mill"},
	{Partial: "Storm", Full: "Brain Storm"},
	{Partial: "Leaf", Full: "Leaf Blower"},
	{Partial: "Bug", Full: "Bug Spray"},
	{Partial: "Ant", Full: "Ant Hill"},
	{Partial: "Bee", Full: "Bee Sting"},
	{Partial: "Wolf", Full: "Lone Wolf"},
	{Partial: "Horse", Full: "Horse Shoe"},
	{Partial: "Pig", Full: "Pig Pen"},
	{Partial: "Cow", Full: "Cow Boy"},
	{Partial: "Sheep", Full: "Sheep Dog"},
	{Partial: "Goat", Full: "Mountain Goat"},
	{Partial: "Duck", Full: "Duck Pond"},
	{Partial: "Frog", Full: "Frog Leg"},
	{Partial: "Snake", Full: "Snake Skin"},
	{Partial: "Hand", Full: "Hand Shake"},
	{Partial: "Foot", Full: "Foot Print"},
	{Partial: "Head", Full: "Head Ache"},
	{Partial: "Eye", Full: "Eye Brow"},
	{Partial: "Ear", Full: "Ear Ring"},
	{Partial: "Nose", Full: "Nose Dive"},
	{Partial: "Tooth", Full: "Sweet Tooth"},
	{Partial: "Hair", Full: "Hair Cut"},
	{Partial: "Sleep", Full: "Sleep Walk"},
	{Partial: "Dream", Full: "Day Dream"},
	{Partial: "Food", Full: "Food Fight"},
	{Partial: "Meat", Full: "Meat Ball"},
	{Partial: "Corn", Full: "Corn Bread"},
	{Partial: "Bean", Full: "Bean Bag"},
	{Partial: "Nut", Full: "Nut Shell"},
	{Partial: "Berry", Full: "Berry Pie"},
	{Partial: "Salt", Full: "Salt Water"},
	{Partial: "Smoke", Full: "Smoke Signal"},
	{Partial: "Drum", Full: "Drum Roll"},
	{Partial: "Boat", Full: "Boat Race"},
	{Partial: "Path", Full: "Path Finder"},
	{Partial: "Hill", Full: "Hill Top"},
	{Partial: "Lake", Full: "Lake House"},
	{Partial: "Night", Full: "Night Owl"},
}
