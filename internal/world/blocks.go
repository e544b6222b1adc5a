package world

import "fmt"

// BlockID is the raw one-byte material code stored in every cell of a level.
// The numeric values are shared with renderers and physics and must not change.
type BlockID uint8

const (
	Air BlockID = iota
	Stone
	Grass
	Dirt
	Cobblestone
	Planks
	Sapling
	Bedrock
	Water
	StillWater
	Lava
	StillLava
	Sand
	Gravel
	GoldOre
	IronOre
	CoalOre
	Log
	Leaves
	Sponge
	Glass
	RedCloth
	OrangeCloth
	YellowCloth
	LimeCloth
	GreenCloth
	TealCloth
	AquaCloth
	CyanCloth
	BlueCloth
	IndigoCloth
	VioletCloth
	MagentaCloth
	PinkCloth
	BlackCloth
	GrayCloth
	WhiteCloth
	Dandelion
	Rose
	BrownMushroom
	RedMushroom
	GoldBlock
	IronBlock
	DoubleSlab
	Slab
	Brick
	TNT
	Bookshelf
	MossyRocks
	Obsidian
)

// MaxBlock is the highest block ID defined by the classic block set.
const MaxBlock = Obsidian

// BlockCategory groups blocks by how generation and spawn placement treat them.
type BlockCategory uint8

const (
	CategorySolid BlockCategory = iota
	CategoryGas
	CategoryFluid
	CategoryPlant
)

// BlockDefinition describes a single entry of the classic block table.
type BlockDefinition struct {
	ID       BlockID
	Name     string
	Category BlockCategory
	Color    string
}

var definitions = [MaxBlock + 1]BlockDefinition{
	{Air, "air", CategoryGas, "#000000"},
	{Stone, "stone", CategorySolid, "#7d7d7d"},
	{Grass, "grass", CategorySolid, "#5d9b3d"},
	{Dirt, "dirt", CategorySolid, "#8b5a2b"},
	{Cobblestone, "cobblestone", CategorySolid, "#7a7a7a"},
	{Planks, "planks", CategorySolid, "#9c7f4e"},
	{Sapling, "sapling", CategoryPlant, "#4f8a2e"},
	{Bedrock, "bedrock", CategorySolid, "#343434"},
	{Water, "water", CategoryFluid, "#2f5fd0"},
	{StillWater, "still_water", CategoryFluid, "#2f5fd0"},
	{Lava, "lava", CategoryFluid, "#d4580f"},
	{StillLava, "still_lava", CategoryFluid, "#d4580f"},
	{Sand, "sand", CategorySolid, "#dbd3a0"},
	{Gravel, "gravel", CategorySolid, "#857f7e"},
	{GoldOre, "gold_ore", CategorySolid, "#8f8c7d"},
	{IronOre, "iron_ore", CategorySolid, "#88827f"},
	{CoalOre, "coal_ore", CategorySolid, "#737373"},
	{Log, "log", CategorySolid, "#665132"},
	{Leaves, "leaves", CategorySolid, "#3a8f26"},
	{Sponge, "sponge", CategorySolid, "#c3c34a"},
	{Glass, "glass", CategorySolid, "#d7eef2"},
	{RedCloth, "red_cloth", CategorySolid, "#e03030"},
	{OrangeCloth, "orange_cloth", CategorySolid, "#e08830"},
	{YellowCloth, "yellow_cloth", CategorySolid, "#e0e030"},
	{LimeCloth, "lime_cloth", CategorySolid, "#88e030"},
	{GreenCloth, "green_cloth", CategorySolid, "#30e030"},
	{TealCloth, "teal_cloth", CategorySolid, "#30e088"},
	{AquaCloth, "aqua_cloth", CategorySolid, "#30e0e0"},
	{CyanCloth, "cyan_cloth", CategorySolid, "#68a8e0"},
	{BlueCloth, "blue_cloth", CategorySolid, "#7878e0"},
	{IndigoCloth, "indigo_cloth", CategorySolid, "#8830e0"},
	{VioletCloth, "violet_cloth", CategorySolid, "#a850e0"},
	{MagentaCloth, "magenta_cloth", CategorySolid, "#e030e0"},
	{PinkCloth, "pink_cloth", CategorySolid, "#e03088"},
	{BlackCloth, "black_cloth", CategorySolid, "#4f4f4f"},
	{GrayCloth, "gray_cloth", CategorySolid, "#969696"},
	{WhiteCloth, "white_cloth", CategorySolid, "#e0e0e0"},
	{Dandelion, "dandelion", CategoryPlant, "#f1f902"},
	{Rose, "rose", CategoryPlant, "#c70a0a"},
	{BrownMushroom, "brown_mushroom", CategoryPlant, "#916d55"},
	{RedMushroom, "red_mushroom", CategoryPlant, "#e2393b"},
	{GoldBlock, "gold_block", CategorySolid, "#f9e84b"},
	{IronBlock, "iron_block", CategorySolid, "#dedede"},
	{DoubleSlab, "double_slab", CategorySolid, "#a8a8a8"},
	{Slab, "slab", CategorySolid, "#a8a8a8"},
	{Brick, "brick", CategorySolid, "#965240"},
	{TNT, "tnt", CategorySolid, "#db441a"},
	{Bookshelf, "bookshelf", CategorySolid, "#6b5634"},
	{MossyRocks, "mossy_rocks", CategorySolid, "#5f715f"},
	{Obsidian, "obsidian", CategorySolid, "#14121e"},
}

// Definition returns the table entry for b. Unknown IDs report ok=false.
func Definition(b BlockID) (BlockDefinition, bool) {
	if b > MaxBlock {
		return BlockDefinition{}, false
	}
	return definitions[b], true
}

func (b BlockID) String() string {
	if def, ok := Definition(b); ok {
		return def.Name
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// IsFluid reports whether b is one of the water or lava variants.
func (b BlockID) IsFluid() bool {
	def, ok := Definition(b)
	return ok && def.Category == CategoryFluid
}

// IsPlant reports whether b is a sprite-like plant block (flowers, mushrooms, saplings).
func (b BlockID) IsPlant() bool {
	def, ok := Definition(b)
	return ok && def.Category == CategoryPlant
}

// IsSolid reports whether an entity can stand on b.
func (b BlockID) IsSolid() bool {
	def, ok := Definition(b)
	return ok && def.Category == CategorySolid
}
