package vault

import (
	"context"
	"errors"

	"github.com/fox-one/pkg/store/db"

	"lever/core"
)

type vaultStore struct {
	db *db.DB
}

// New new vault store
func New(db *db.DB) core.IVaultStore {
	return &vaultStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Vault{})
		if err := tx.AutoMigrate(core.Vault{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *vaultStore) Save(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	if err := tx.Update().Create(vault).Error; err != nil {
		return err
	}
	return nil
}

func (s *vaultStore) Find(ctx context.Context, assetID string) (*core.Vault, error) {
	if assetID == "" {
		return nil, errors.New("invalid asset_id")
	}

	var vault core.Vault
	if err := s.db.View().Where("asset_id=?", assetID).First(&vault).Error; err != nil {
		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) FindByLSTAsset(ctx context.Context, lstAssetID string) (*core.Vault, error) {
	if lstAssetID == "" {
		return nil, errors.New("invalid lst_asset_id")
	}

	var vault core.Vault
	if err := s.db.View().Where("lst_asset_id=?", lstAssetID).First(&vault).Error; err != nil {
		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) All(ctx context.Context) ([]*core.Vault, error) {
	var vaults []*core.Vault
	if err := s.db.View().Find(&vaults).Error; err != nil {
		return nil, err
	}
	return vaults, nil
}

func (s *vaultStore) Update(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	version := vault.Version
	vault.Version++
	if err := tx.Update().Model(core.Vault{}).Where("asset_id=? and version=?", vault.AssetID, version).Update(vault).Error; err != nil {
		return err
	}

	return nil
}
