package catalog

import (
	"sync"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
)

// Raw resources
const (
	IronOre     Item = "iron_ore"
	CopperOre   Item = "copper_ore"
	Limestone   Item = "limestone"
	Coal        Item = "coal"
	CateriumOre Item = "caterium_ore"
	RawQuartz   Item = "raw_quartz"
	Sulfur      Item = "sulfur"
	Bauxite     Item = "bauxite"
	Uranium     Item = "uranium"
	SAM         Item = "sam"
	CrudeOil    Item = "crude_oil"
	Water       Item = "water"
	NitrogenGas Item = "nitrogen_gas"
	Leaves      Item = "leaves"
	Wood        Item = "wood"
	Mycelia     Item = "mycelia"
)

// Intermediates and products
const (
	IronIngot             Item = "iron_ingot"
	CopperIngot           Item = "copper_ingot"
	CateriumIngot         Item = "caterium_ingot"
	SteelIngot            Item = "steel_ingot"
	IronPlate             Item = "iron_plate"
	IronRod               Item = "iron_rod"
	Screw                 Item = "screw"
	Wire                  Item = "wire"
	Cable                 Item = "cable"
	Concrete              Item = "concrete"
	CopperSheet           Item = "copper_sheet"
	SteelBeam             Item = "steel_beam"
	SteelPipe             Item = "steel_pipe"
	Quickwire             Item = "quickwire"
	ReinforcedIronPlate   Item = "reinforced_iron_plate"
	Rotor                 Item = "rotor"
	ModularFrame          Item = "modular_frame"
	SmartPlating          Item = "smart_plating"
	EncasedIndustrialBeam Item = "encased_industrial_beam"
	Stator                Item = "stator"
	Motor                 Item = "motor"
	HeavyModularFrame     Item = "heavy_modular_frame"
	Plastic               Item = "plastic"
	Rubber                Item = "rubber"
	CircuitBoard          Item = "circuit_board"
	Computer              Item = "computer"
	HeavyOilResidue       Item = "heavy_oil_residue"
	PolymerResin          Item = "polymer_resin"
	Biomass               Item = "biomass"
	SolidBiofuel          Item = "solid_biofuel"
	CompactedCoal         Item = "compacted_coal"
	PetroleumCoke         Item = "petroleum_coke"
	Fuel                  Item = "fuel"
	LiquidBiofuel         Item = "liquid_biofuel"
	Turbofuel             Item = "turbofuel"
	RocketFuel            Item = "rocket_fuel"
	IonizedFuel           Item = "ionized_fuel"
	UraniumFuelRod        Item = "uranium_fuel_rod"
	PlutoniumFuelRod      Item = "plutonium_fuel_rod"
	FicsoniumFuelRod      Item = "ficsonium_fuel_rod"
	UraniumWaste          Item = "uranium_waste"
	PlutoniumWaste        Item = "plutonium_waste"
)

// Machines
const (
	Smelter      MachineID = "smelter"
	Constructor  MachineID = "constructor"
	Assembler    MachineID = "assembler"
	Foundry      MachineID = "foundry"
	Manufacturer MachineID = "manufacturer"
	Refinery     MachineID = "refinery"
	Blender      MachineID = "blender"
	Packager     MachineID = "packager"
)

// Extractor tiers
const (
	MinerMk1       ExtractorID = "miner_mk1"
	MinerMk2       ExtractorID = "miner_mk2"
	MinerMk3       ExtractorID = "miner_mk3"
	WaterExtractor ExtractorID = "water_extractor"
	OilExtractor   ExtractorID = "oil_extractor"
)

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the standard game catalog. The result is shared and read-only.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		builtin = buildBuiltin()
	})
	return builtin
}

func per(item Item, rate float64) ItemRate { return ItemRate{Item: item, Rate: rate} }

func buildBuiltin() *Catalog {
	c := newCatalog()

	fluids := map[Item]bool{
		CrudeOil: true, Water: true, NitrogenGas: true, HeavyOilResidue: true,
		Fuel: true, LiquidBiofuel: true, Turbofuel: true, RocketFuel: true, IonizedFuel: true,
	}
	allItems := []Item{
		IronOre, CopperOre, Limestone, Coal, CateriumOre, RawQuartz, Sulfur, Bauxite, Uranium, SAM,
		CrudeOil, Water, NitrogenGas, Leaves, Wood, Mycelia,
		IronIngot, CopperIngot, CateriumIngot, SteelIngot, IronPlate, IronRod, Screw, Wire, Cable,
		Concrete, CopperSheet, SteelBeam, SteelPipe, Quickwire, ReinforcedIronPlate, Rotor,
		ModularFrame, SmartPlating, EncasedIndustrialBeam, Stator, Motor, HeavyModularFrame,
		Plastic, Rubber, CircuitBoard, Computer, HeavyOilResidue, PolymerResin, Biomass,
		SolidBiofuel, CompactedCoal, PetroleumCoke, Fuel, LiquidBiofuel, Turbofuel, RocketFuel,
		IonizedFuel, UraniumFuelRod, PlutoniumFuelRod, FicsoniumFuelRod, UraniumWaste, PlutoniumWaste,
	}
	for _, item := range allItems {
		c.addItem(ItemInfo{ID: item, Name: displayName(string(item)), Fluid: fluids[item]})
	}

	machines := []MachineType{
		{ID: Smelter, Name: "Smelter", BasePowerMW: 4, BoosterCap: 1},
		{ID: Constructor, Name: "Constructor", BasePowerMW: 4, BoosterCap: 1},
		{ID: Assembler, Name: "Assembler", BasePowerMW: 15, BoosterCap: 2},
		{ID: Foundry, Name: "Foundry", BasePowerMW: 16, BoosterCap: 2},
		{ID: Manufacturer, Name: "Manufacturer", BasePowerMW: 55, BoosterCap: 4},
		{ID: Refinery, Name: "Refinery", BasePowerMW: 30, BoosterCap: 2},
		{ID: Blender, Name: "Blender", BasePowerMW: 75, BoosterCap: 4},
		{ID: Packager, Name: "Packager", BasePowerMW: 10, BoosterCap: 0},
	}
	for _, m := range machines {
		mustOK(c.addMachine(m))
	}

	recipes := []Recipe{
		{ID: "iron_ingot", Name: "Iron Ingot", Machine: Smelter,
			Inputs: []ItemRate{per(IronOre, 30)}, Outputs: []ItemRate{per(IronIngot, 30)}},
		{ID: "copper_ingot", Name: "Copper Ingot", Machine: Smelter,
			Inputs: []ItemRate{per(CopperOre, 30)}, Outputs: []ItemRate{per(CopperIngot, 30)}},
		{ID: "caterium_ingot", Name: "Caterium Ingot", Machine: Smelter,
			Inputs: []ItemRate{per(CateriumOre, 45)}, Outputs: []ItemRate{per(CateriumIngot, 15)}},
		{ID: "steel_ingot", Name: "Steel Ingot", Machine: Foundry,
			Inputs: []ItemRate{per(IronOre, 45), per(Coal, 45)}, Outputs: []ItemRate{per(SteelIngot, 45)}},
		{ID: "iron_plate", Name: "Iron Plate", Machine: Constructor,
			Inputs: []ItemRate{per(IronIngot, 30)}, Outputs: []ItemRate{per(IronPlate, 20)}},
		{ID: "iron_rod", Name: "Iron Rod", Machine: Constructor,
			Inputs: []ItemRate{per(IronIngot, 15)}, Outputs: []ItemRate{per(IronRod, 15)}},
		{ID: "screw", Name: "Screw", Machine: Constructor,
			Inputs: []ItemRate{per(IronRod, 10)}, Outputs: []ItemRate{per(Screw, 40)}},
		{ID: "wire", Name: "Wire", Machine: Constructor,
			Inputs: []ItemRate{per(CopperIngot, 15)}, Outputs: []ItemRate{per(Wire, 30)}},
		{ID: "cable", Name: "Cable", Machine: Constructor,
			Inputs: []ItemRate{per(Wire, 60)}, Outputs: []ItemRate{per(Cable, 30)}},
		{ID: "concrete", Name: "Concrete", Machine: Constructor,
			Inputs: []ItemRate{per(Limestone, 45)}, Outputs: []ItemRate{per(Concrete, 15)}},
		{ID: "copper_sheet", Name: "Copper Sheet", Machine: Constructor,
			Inputs: []ItemRate{per(CopperIngot, 20)}, Outputs: []ItemRate{per(CopperSheet, 10)}},
		{ID: "steel_beam", Name: "Steel Beam", Machine: Constructor,
			Inputs: []ItemRate{per(SteelIngot, 60)}, Outputs: []ItemRate{per(SteelBeam, 15)}},
		{ID: "steel_pipe", Name: "Steel Pipe", Machine: Constructor,
			Inputs: []ItemRate{per(SteelIngot, 30)}, Outputs: []ItemRate{per(SteelPipe, 20)}},
		{ID: "quickwire", Name: "Quickwire", Machine: Constructor,
			Inputs: []ItemRate{per(CateriumIngot, 12)}, Outputs: []ItemRate{per(Quickwire, 60)}},
		{ID: "biomass_leaves", Name: "Biomass (Leaves)", Machine: Constructor,
			Inputs: []ItemRate{per(Leaves, 120)}, Outputs: []ItemRate{per(Biomass, 60)}},
		{ID: "biomass_wood", Name: "Biomass (Wood)", Machine: Constructor,
			Inputs: []ItemRate{per(Wood, 60)}, Outputs: []ItemRate{per(Biomass, 300)}},
		{ID: "solid_biofuel", Name: "Solid Biofuel", Machine: Constructor,
			Inputs: []ItemRate{per(Biomass, 120)}, Outputs: []ItemRate{per(SolidBiofuel, 60)}},
		{ID: "reinforced_iron_plate", Name: "Reinforced Iron Plate", Machine: Assembler,
			Inputs: []ItemRate{per(IronPlate, 30), per(Screw, 60)}, Outputs: []ItemRate{per(ReinforcedIronPlate, 5)}},
		{ID: "rotor", Name: "Rotor", Machine: Assembler,
			Inputs: []ItemRate{per(IronRod, 20), per(Screw, 100)}, Outputs: []ItemRate{per(Rotor, 4)}},
		{ID: "modular_frame", Name: "Modular Frame", Machine: Assembler,
			Inputs: []ItemRate{per(ReinforcedIronPlate, 3), per(IronRod, 12)}, Outputs: []ItemRate{per(ModularFrame, 2)}},
		{ID: "smart_plating", Name: "Smart Plating", Machine: Assembler,
			Inputs: []ItemRate{per(ReinforcedIronPlate, 2), per(Rotor, 2)}, Outputs: []ItemRate{per(SmartPlating, 2)}},
		{ID: "encased_industrial_beam", Name: "Encased Industrial Beam", Machine: Assembler,
			Inputs: []ItemRate{per(SteelBeam, 18), per(Concrete, 36)}, Outputs: []ItemRate{per(EncasedIndustrialBeam, 6)}},
		{ID: "stator", Name: "Stator", Machine: Assembler,
			Inputs: []ItemRate{per(SteelPipe, 15), per(Wire, 40)}, Outputs: []ItemRate{per(Stator, 5)}},
		{ID: "motor", Name: "Motor", Machine: Assembler,
			Inputs: []ItemRate{per(Rotor, 10), per(Stator, 10)}, Outputs: []ItemRate{per(Motor, 5)}},
		{ID: "circuit_board", Name: "Circuit Board", Machine: Assembler,
			Inputs: []ItemRate{per(CopperSheet, 15), per(Plastic, 30)}, Outputs: []ItemRate{per(CircuitBoard, 7.5)}},
		{ID: "alternate_compacted_coal", Name: "Compacted Coal", Machine: Assembler, Alternate: true,
			Inputs: []ItemRate{per(Coal, 25), per(Sulfur, 25)}, Outputs: []ItemRate{per(CompactedCoal, 25)}},
		{ID: "heavy_modular_frame", Name: "Heavy Modular Frame", Machine: Manufacturer,
			Inputs: []ItemRate{per(ModularFrame, 10), per(SteelPipe, 40), per(EncasedIndustrialBeam, 10), per(Screw, 240)},
			Outputs: []ItemRate{per(HeavyModularFrame, 2)}},
		{ID: "computer", Name: "Computer", Machine: Manufacturer,
			Inputs:  []ItemRate{per(CircuitBoard, 10), per(Cable, 20), per(Plastic, 40)},
			Outputs: []ItemRate{per(Computer, 2.5)}},
		{ID: "plastic", Name: "Plastic", Machine: Refinery,
			Inputs: []ItemRate{per(CrudeOil, 30)}, Outputs: []ItemRate{per(Plastic, 20), per(HeavyOilResidue, 10)}},
		{ID: "rubber", Name: "Rubber", Machine: Refinery,
			Inputs: []ItemRate{per(CrudeOil, 30)}, Outputs: []ItemRate{per(Rubber, 20), per(HeavyOilResidue, 20)}},
		{ID: "fuel", Name: "Fuel", Machine: Refinery,
			Inputs: []ItemRate{per(CrudeOil, 60)}, Outputs: []ItemRate{per(Fuel, 40), per(PolymerResin, 30)}},
		{ID: "petroleum_coke", Name: "Petroleum Coke", Machine: Refinery,
			Inputs: []ItemRate{per(HeavyOilResidue, 40)}, Outputs: []ItemRate{per(PetroleumCoke, 120)}},
		{ID: "alternate_turbo_blend_fuel", Name: "Turbo Blend Fuel", Machine: Blender, Alternate: true,
			Inputs:  []ItemRate{per(Fuel, 15), per(HeavyOilResidue, 30), per(Sulfur, 22.5), per(PetroleumCoke, 22.5)},
			Outputs: []ItemRate{per(Turbofuel, 45)}},
	}
	for _, r := range recipes {
		mustOK(c.addRecipe(r))
	}

	solids := []Item{IronOre, CopperOre, Limestone, Coal, CateriumOre, RawQuartz, Sulfur, Bauxite, Uranium, SAM}
	extractors := []ExtractorType{
		{ID: MinerMk1, Name: "Miner Mk.1", BasePowerMW: 5, BaseRate: 60, Items: solids},
		{ID: MinerMk2, Name: "Miner Mk.2", BasePowerMW: 15, BaseRate: 120, Items: solids},
		{ID: MinerMk3, Name: "Miner Mk.3", BasePowerMW: 45, BaseRate: 240, Items: solids},
		{ID: WaterExtractor, Name: "Water Extractor", BasePowerMW: 20, BaseRate: 120, Items: []Item{Water}},
		{ID: OilExtractor, Name: "Oil Extractor", BasePowerMW: 40, BaseRate: 120, Items: []Item{CrudeOil}},
	}
	for _, e := range extractors {
		mustOK(c.addExtractor(e))
	}

	c.wellItems[CrudeOil] = true
	c.wellItems[Water] = true
	c.wellItems[NitrogenGas] = true

	c.generators[GeneratorBiomass] = GeneratorType{
		ID: GeneratorBiomass, Name: "Biomass Burner", BasePowerMW: 30, BaseFuelRate: 4,
		Fuels: map[formula.FuelType]Item{
			formula.FuelSolidBiofuel: SolidBiofuel,
			formula.FuelBiomass:      Biomass,
			formula.FuelWood:         Wood,
			formula.FuelLeaves:       Leaves,
			formula.FuelMycelia:      Mycelia,
		},
	}
	c.generators[GeneratorCoal] = GeneratorType{
		ID: GeneratorCoal, Name: "Coal-Powered Generator", BasePowerMW: 75, BaseFuelRate: 15,
		Fuels: map[formula.FuelType]Item{
			formula.FuelCoal:          Coal,
			formula.FuelCompactedCoal: CompactedCoal,
			formula.FuelPetroleumCoke: PetroleumCoke,
		},
	}
	c.generators[GeneratorFuel] = GeneratorType{
		ID: GeneratorFuel, Name: "Fuel-Powered Generator", BasePowerMW: 250, BaseFuelRate: 20,
		Fuels: map[formula.FuelType]Item{
			formula.FuelFuel:          Fuel,
			formula.FuelLiquidBiofuel: LiquidBiofuel,
			formula.FuelTurbofuel:     Turbofuel,
			formula.FuelRocketFuel:    RocketFuel,
			formula.FuelIonizedFuel:   IonizedFuel,
		},
	}
	c.generators[GeneratorNuclear] = GeneratorType{
		ID: GeneratorNuclear, Name: "Nuclear Power Plant", BasePowerMW: 2500, BaseFuelRate: 0.2,
		Fuels: map[formula.FuelType]Item{
			formula.FuelUraniumRod:   UraniumFuelRod,
			formula.FuelPlutoniumRod: PlutoniumFuelRod,
			formula.FuelFicsoniumRod: FicsoniumFuelRod,
		},
		Waste: map[formula.FuelType]Item{
			formula.FuelUraniumRod:   UraniumWaste,
			formula.FuelPlutoniumRod: PlutoniumWaste,
		},
	}
	c.generators[GeneratorGeothermal] = GeneratorType{
		ID: GeneratorGeothermal, Name: "Geothermal Generator", BasePowerMW: 200,
	}

	return c
}

func mustOK(err error) {
	if err != nil {
		panic("catalog: invalid built-in data: " + err.Error())
	}
}

// displayName turns "iron_ore" into "Iron Ore"
func displayName(id string) string {
	out := make([]byte, 0, len(id))
	upper := true
	for i := 0; i < len(id); i++ {
		ch := id[i]
		if ch == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		upper = false
		out = append(out, ch)
	}
	return string(out)
}
