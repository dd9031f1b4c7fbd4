package winch

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"WinchWorks/shared/items"
	"WinchWorks/shared/util"
)

const CurrentFormatVersion = 1

// WinchModel é o esquema do banco para a entidade de um guincho.
type WinchModel struct {
	ID        string `gorm:"primaryKey"` // "X_Y_Z"
	X, Y, Z   int32  `gorm:"index:idx_pos"`
	Facing    string
	Data      []byte // savedState em GOB comprimido com zstd
	UpdatedAt time.Time
}

// WorldMetadata guarda informações globais do mundo.
type WorldMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// savedState é a parte persistente da entidade. O giro (quem gira, modo automático) não é salvo.
type savedState struct {
	Slot        *items.ItemStack
	BucketDepth float32
	AngleRad    float32
	IsRaising   bool
}

// SavedWinch é um guincho lido do banco.
type SavedWinch struct {
	Pos    util.BlockPos
	Facing util.Facing
	state  savedState
}

// Store persiste guinchos num banco SQLite por mundo.
type Store struct {
	DB *gorm.DB

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// OpenStore abre (ou cria) <dir>/<mundo>.ww e roda as migrações.
func OpenStore(dir, worldName string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	dsn := filepath.Join(dir, fmt.Sprintf("%s.ww", worldName))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}
	if err := db.AutoMigrate(&WinchModel{}, &WorldMetadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}
	if err := writeMetadata(db, worldName); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}

	log.Printf("[Persistence] Banco de dados SQLite aberto: %s", dsn)
	return &Store{DB: db, enc: enc, dec: dec}, nil
}

func writeMetadata(db *gorm.DB, worldName string) error {
	meta := []WorldMetadata{
		{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)},
		{Key: "WorldName", Value: worldName},
	}
	for i := range meta {
		if err := db.Save(&meta[i]).Error; err != nil {
			return fmt.Errorf("falha ao gravar metadado %s: %w", meta[i].Key, err)
		}
	}
	return nil
}

// Save grava o estado persistente de um guincho (upsert).
func (s *Store) Save(be *BlockEntityWinch) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}
	snap := be.Snapshot()
	st := savedState{
		Slot:        snap.Slot,
		BucketDepth: snap.BucketDepth,
		AngleRad:    snap.AngleRad,
		IsRaising:   snap.IsRaising,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&st); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}

	model := WinchModel{
		ID:     be.Pos.Key(),
		X:      be.Pos.X,
		Y:      be.Pos.Y,
		Z:      be.Pos.Z,
		Facing: be.Facing.String(),
		Data:   s.enc.EncodeAll(buf.Bytes(), nil),
	}
	if err := s.DB.Save(&model).Error; err != nil {
		log.Printf("[Persistence] ERRO ao salvar guincho %s: %v", model.ID, err)
		return err
	}
	return nil
}

// LoadAll lê todos os guinchos salvos. Registros corrompidos são pulados com log.
func (s *Store) LoadAll() ([]*SavedWinch, error) {
	var models []WinchModel
	if err := s.DB.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*SavedWinch, 0, len(models))
	for _, m := range models {
		sw, err := s.decode(m)
		if err != nil {
			log.Printf("[Persistence] Guincho %s ignorado: %v", m.ID, err)
			continue
		}
		out = append(out, sw)
	}
	return out, nil
}

func (s *Store) decode(m WinchModel) (*SavedWinch, error) {
	facing, err := util.ParseFacing(m.Facing)
	if err != nil {
		return nil, err
	}
	raw, err := s.dec.DecodeAll(m.Data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	var st savedState
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&st); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return &SavedWinch{
		Pos:    util.NewBlockPos(m.X, m.Y, m.Z),
		Facing: facing,
		state:  st,
	}, nil
}

// Close fecha o banco e os codecs.
func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Restore aplica o estado salvo numa entidade recém criada.
// A profundidade é limitada ao curso atual do poço, que pode ter mudado desde o save.
func (be *BlockEntityWinch) Restore(sw *SavedWinch) {
	be.mu.Lock()
	defer be.mu.Unlock()
	be.inputSlot = sw.state.Slot.Clone()
	be.bucketDepth = util.Clamp(sw.state.BucketDepth, 0, be.maxDepth)
	be.angleRad = sw.state.AngleRad
	be.isRaising = sw.state.IsRaising
	be.dirty = true
}
