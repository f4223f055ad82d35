package iofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/seed"
)

const wormsAPI = "https://www.marinespecies.org/rest"

// familyTarget is one family of the fixed recreational-diving list.
type familyTarget struct {
	scientific string
	common     string
	category   string
}

// divingFamilies is the curated family list the species taxonomy is
// built from.
var divingFamilies = []familyTarget{
	// Sharks
	{"Carcharhinidae", "Requiem Sharks", "Fish"},
	{"Sphyrnidae", "Hammerhead Sharks", "Fish"},
	{"Lamnidae", "Mackerel Sharks", "Fish"},
	{"Orectolobidae", "Wobbegongs", "Fish"},
	{"Ginglymostomatidae", "Nurse Sharks", "Fish"},
	{"Rhincodontidae", "Whale Sharks", "Fish"},
	// Rays
	{"Mobulidae", "Manta Rays", "Fish"},
	{"Myliobatidae", "Eagle Rays", "Fish"},
	{"Dasyatidae", "Stingrays", "Fish"},
	// Reef fish
	{"Labridae", "Wrasses", "Fish"},
	{"Serranidae", "Groupers", "Fish"},
	{"Chaetodontidae", "Butterflyfish", "Fish"},
	{"Pomacanthidae", "Angelfish", "Fish"},
	{"Pomacentridae", "Damselfish", "Fish"},
	{"Scaridae", "Parrotfish", "Fish"},
	{"Acanthuridae", "Surgeonfish", "Fish"},
	{"Balistidae", "Triggerfish", "Fish"},
	{"Tetraodontidae", "Pufferfish", "Fish"},
	{"Muraenidae", "Moray Eels", "Fish"},
	{"Scorpaenidae", "Scorpionfish", "Fish"},
	{"Syngnathidae", "Seahorses & Pipefish", "Fish"},
	{"Antennariidae", "Frogfish", "Fish"},
	{"Lutjanidae", "Snappers", "Fish"},
	{"Carangidae", "Jacks", "Fish"},
	{"Ephippidae", "Batfish", "Fish"},
	// Turtles
	{"Cheloniidae", "Sea Turtles", "Reptile"},
	{"Dermochelyidae", "Leatherback Turtles", "Reptile"},
	// Mammals
	{"Delphinidae", "Dolphins", "Mammal"},
	{"Dugongidae", "Dugongs", "Mammal"},
	{"Trichechidae", "Manatees", "Mammal"},
	{"Phocidae", "True Seals", "Mammal"},
	// Cephalopods
	{"Octopodidae", "Octopuses", "Invertebrate"},
	{"Sepiidae", "Cuttlefish", "Invertebrate"},
	// Nudibranchs
	{"Chromodorididae", "Chromodorid Nudibranchs", "Invertebrate"},
	{"Phyllidiidae", "Phyllidiid Nudibranchs", "Invertebrate"},
	{"Flabellinidae", "Flabellinid Nudibranchs", "Invertebrate"},
	// Crustaceans
	{"Stenopodidae", "Cleaner Shrimp", "Invertebrate"},
	{"Palaemonidae", "Palaemonid Shrimp", "Invertebrate"},
	{"Palinuridae", "Spiny Lobsters", "Invertebrate"},
	// Corals
	{"Acroporidae", "Staghorn Corals", "Coral"},
	{"Pocilloporidae", "Cauliflower Corals", "Coral"},
	{"Poritidae", "Porites Corals", "Coral"},
	{"Fungiidae", "Mushroom Corals", "Coral"},
	{"Faviidae", "Brain Corals", "Coral"},
	{"Dendrophylliidae", "Dendrophyllia Corals", "Coral"},
	// Echinoderms
	{"Holothuriidae", "Sea Cucumbers", "Invertebrate"},
	{"Ophidiasteridae", "Sea Stars", "Invertebrate"},
	{"Diadematidae", "Sea Urchins", "Invertebrate"},
	{"Crinoidea", "Feather Stars", "Invertebrate"},
}

// aphiaRecord is the subset of a WoRMS Aphia record we consume.
type aphiaRecord struct {
	AphiaID        int64  `json:"AphiaID"`
	ScientificName string `json:"scientificname"`
	Rank           string `json:"rank"`
	Status         string `json:"status"`
}

// Worms resolves the diving family list against the WoRMS REST API and
// writes families_catalog.json.
type Worms struct {
	cfg    *config.Config
	client *Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewWorms creates a WoRMS fetcher.
func NewWorms(cfg *config.Config) *Worms {
	return &Worms{
		cfg:     cfg,
		client:  NewClient(cfg.Fetch.RequestDelayMs),
		BaseURL: wormsAPI,
	}
}

// Fetch resolves every family's AphiaID and writes the catalog. Already
// checkpointed families are skipped, so an interrupted run resumes
// where it left off.
func (w *Worms) Fetch(ctx context.Context) error {
	cpPath := filepath.Join(
		config.CacheDir(w.cfg.HomeDir), "worms_families.jsonl")
	cp, err := OpenCheckpoint(cpPath)
	if err != nil {
		return err
	}
	defer cp.Close()

	if cp.Count() > 0 {
		gn.Info("Resuming: <em>%d</em> of %d families already fetched",
			cp.Count(), len(divingFamilies))
	}

	processed := 0
	for _, target := range divingFamilies {
		id := familyID(target.scientific)
		if cp.Done(id) {
			continue
		}

		record, err := w.lookup(ctx, target.scientific)
		if err != nil {
			return err
		}

		var family *seed.Family
		if record == nil {
			slog.Warn("family not found in WoRMS",
				"family", target.scientific)
		} else {
			family = &seed.Family{
				ID:             id,
				Name:           target.common,
				ScientificName: target.scientific,
				Category:       target.category,
				WormsAphiaID:   &record.AphiaID,
			}
		}

		if err := cp.Mark(id, family); err != nil {
			return err
		}

		processed++
		if w.cfg.Fetch.CheckpointEvery > 0 &&
			processed%w.cfg.Fetch.CheckpointEvery == 0 {
			slog.Info("worms fetch progress",
				"done", cp.Count(), "total", len(divingFamilies))
		}
	}

	return w.writeCatalog(cp)
}

// lookup resolves one family name. A tolerated request failure or an
// empty result yields nil.
func (w *Worms) lookup(
	ctx context.Context,
	scientific string,
) (*aphiaRecord, error) {
	u := fmt.Sprintf("%s/AphiaRecordsByName/%s?like=false&marine_only=true",
		w.BaseURL, url.PathEscape(scientific))

	var records []aphiaRecord
	ok, err := w.client.GetJSON(ctx, u, &records)
	if err != nil {
		return nil, err
	}
	if !ok || len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// writeCatalog assembles families_catalog.json from the checkpoint log,
// keeping the curated list order.
func (w *Worms) writeCatalog(cp *Checkpoint) error {
	byID := make(map[string]seed.Family)
	cp.Each(func(id string, data json.RawMessage) {
		if len(data) == 0 {
			return
		}
		var family seed.Family
		if err := json.Unmarshal(data, &family); err != nil {
			slog.Warn("skipping corrupt checkpoint entry", "id", id)
			return
		}
		byID[id] = family
	})

	doc := seed.FamiliesDoc{}
	for _, target := range divingFamilies {
		if family, ok := byID[familyID(target.scientific)]; ok {
			doc.Families = append(doc.Families, family)
		}
	}

	outPath := filepath.Join(w.cfg.Paths.DataDir, "families_catalog.json")
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(doc)
	if err != nil {
		return OutputError(outPath, err)
	}
	if err := os.WriteFile(outPath, bs, 0644); err != nil {
		return OutputError(outPath, err)
	}

	slog.Info("families catalog written",
		"file", outPath, "families", len(doc.Families))
	gn.Info("Wrote <em>%d</em> families to <em>%s</em>",
		len(doc.Families), outPath)
	return nil
}

func familyID(scientific string) string {
	return strings.ToLower(scientific)
}
