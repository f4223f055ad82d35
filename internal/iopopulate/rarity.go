package iopopulate

import (
	"context"
	"log/slog"

	"github.com/umilog/umiseed/pkg/seed"
)

// applyRarity recalculates every species' rarity from its linked-site
// count and writes the result back. Rarity values carried by the input
// catalogs are only placeholders; this pass is authoritative.
func (p *populator) applyRarity(
	ctx context.Context,
	counts map[string]int,
) error {
	speciesIDs, err := p.tableIDs(ctx, "wildlife_species")
	if err != nil {
		return err
	}
	if len(speciesIDs) == 0 {
		slog.Warn("no species seeded, skipping rarity")
		return nil
	}

	// Every species participates in the ranking; those without links
	// carry a zero count and end up Very Rare.
	siteCounts := make([]seed.SiteCount, 0, len(speciesIDs))
	for id := range speciesIDs {
		siteCounts = append(siteCounts, seed.SiteCount{
			SpeciesID: id,
			Sites:     counts[id],
		})
	}

	rarities := seed.AssignRarity(siteCounts)

	conn := p.operator.DB()
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return RarityError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"UPDATE wildlife_species SET rarity = ? WHERE id = ?")
	if err != nil {
		return RarityError(err)
	}
	defer stmt.Close()

	for id, rarity := range rarities {
		if _, err := stmt.ExecContext(ctx, string(rarity), id); err != nil {
			return RarityError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return RarityError(err)
	}

	distribution := make(map[seed.Rarity]int)
	for _, r := range rarities {
		distribution[r]++
	}
	slog.Info("rarity recalculated",
		"common", distribution[seed.RarityCommon],
		"uncommon", distribution[seed.RarityUncommon],
		"rare", distribution[seed.RarityRare],
		"very_rare", distribution[seed.RarityVeryRare],
	)
	return nil
}
