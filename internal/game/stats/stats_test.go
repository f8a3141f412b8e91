package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auraforge/internal/model"
)

var starting = model.Attributes{Strength: 5, Dexterity: 5, Intellect: 5, Vitality: 5}

func TestDerive_StartingWarrior(t *testing.T) {
	t.Parallel()

	ds := Derive(starting, model.EquipmentBonusTotals{}, 1, model.ClassWarrior)

	assert.Equal(t, int64(92), ds.MaxHealth) // 5*15*1.02*1.2 = 91.8
	assert.Equal(t, int64(5), ds.Damage)     // 5*1*1.03*1.05
	assert.InDelta(t, 1.0815, ds.LevelDamageMultiplier, 1e-9)
	assert.Equal(t, 1, ds.WeaponDamageMin)
	assert.Equal(t, 1, ds.WeaponDamageMax)
	assert.Zero(t, ds.Armor)
	assert.InDelta(t, 5.0, ds.CritRate, 1e-9)
	assert.InDelta(t, 150.0, ds.CritDamage, 1e-9)
	assert.InDelta(t, 102.5, ds.Speed, 1e-9)
	assert.Equal(t, model.StatStrength, ds.MainStat)
	assert.Equal(t, 5, ds.MainStatValue)
	assert.InDelta(t, 0.50, ds.ArmorCap, 1e-9)
	assert.Zero(t, ds.AuraPercent)
	// 20*100 + 5*2 + 92 + 5*100 + 150*50 + 102.5*30
	assert.Equal(t, int64(13177), ds.Aura)
}

func TestDerive_GearedMage(t *testing.T) {
	t.Parallel()

	bonus := model.EquipmentBonusTotals{
		Attributes:      model.Attributes{Intellect: 10},
		AuraPercent:     10,
		WeaponDamageMin: 4,
		WeaponDamageMax: 6,
		Armor:           25,
		CritRate:        2,
		CritDamage:      10,
		Speed:           4,
	}
	ds := Derive(starting, bonus, 10, model.ClassMage)

	assert.InDelta(t, 23.5, ds.AuraPercent, 1e-9) // 9*1.5 + 10
	assert.Equal(t, int64(111), ds.MaxHealth)     // 5*15*1.2*1.235 = 111.15
	assert.Equal(t, int64(120), ds.Damage)        // 15*5*1.3*1.235 = 120.41
	assert.Equal(t, 15, ds.MainStatValue)
	assert.Equal(t, 4, ds.WeaponDamageMin)
	assert.Equal(t, 6, ds.WeaponDamageMax)
	assert.Equal(t, 25, ds.Armor)
	assert.InDelta(t, 7.0, ds.CritRate, 1e-9)
	assert.InDelta(t, 160.0, ds.CritDamage, 1e-9)
	assert.InDelta(t, 106.5, ds.Speed, 1e-9)
	assert.Equal(t, 15, ds.Attributes.Intellect)
}

func TestDerive_ClassPassives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class      model.Class
		speed      float64
		critRate   float64
		critDamage float64
		lifesteal  float64
		armorCap   float64
	}{
		{model.ClassWarrior, 102.5, 5, 150, 0, 0.50},
		{model.ClassTank, 92.5, 5, 150, 0, 0.60},
		{model.ClassAssassin, 117.5, 10, 150, 0, 0.50},
		{model.ClassArcher, 112.5, 5, 175, 0, 0.50},
		{model.ClassMage, 102.5, 5, 150, 0, 0.50},
		{model.ClassNecromancer, 102.5, 5, 150, 0.15, 0.50},
	}
	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			t.Parallel()
			ds := Derive(starting, model.EquipmentBonusTotals{}, 1, tt.class)
			assert.InDelta(t, tt.speed, ds.Speed, 1e-9)
			assert.InDelta(t, tt.critRate, ds.CritRate, 1e-9)
			assert.InDelta(t, tt.critDamage, ds.CritDamage, 1e-9)
			assert.InDelta(t, tt.lifesteal, ds.LifestealRate, 1e-9)
			assert.InDelta(t, tt.armorCap, ds.ArmorCap, 1e-9)
		})
	}
}

// Танк получает самый большой множитель здоровья.
func TestDerive_TankHasMostHealth(t *testing.T) {
	t.Parallel()

	tank := Derive(starting, model.EquipmentBonusTotals{}, 20, model.ClassTank)
	for _, c := range model.AllClasses {
		if c == model.ClassTank {
			continue
		}
		other := Derive(starting, model.EquipmentBonusTotals{}, 20, c)
		assert.Greater(t, tank.MaxHealth, other.MaxHealth, "class %s", c)
	}
}

func TestDerive_Clamping(t *testing.T) {
	t.Parallel()

	bonus := model.EquipmentBonusTotals{
		Attributes: model.Attributes{Strength: -50, Dexterity: -500, Vitality: -50},
		CritRate:   500,
		CritDamage: -1000,
		Speed:      -1000,
		Armor:      -10,
	}
	ds := Derive(starting, bonus, 0, model.ClassWarrior)

	assert.Equal(t, 1, ds.Level)
	assert.Equal(t, int64(1), ds.MaxHealth)
	assert.Equal(t, int64(1), ds.Damage)
	assert.Zero(t, ds.Attributes.Strength)
	assert.Zero(t, ds.Armor)
	assert.InDelta(t, 100.0, ds.CritRate, 1e-9)
	assert.Zero(t, ds.CritDamage)
	assert.Zero(t, ds.Speed)
	assert.GreaterOrEqual(t, ds.Aura, int64(0))

	ds = Derive(starting, model.EquipmentBonusTotals{CritRate: -100}, 1, model.ClassAssassin)
	assert.Zero(t, ds.CritRate)
}

func TestDerive_FullRecompute(t *testing.T) {
	t.Parallel()

	bonus := model.EquipmentBonusTotals{Attributes: model.Attributes{Vitality: 3}, Armor: 12}
	a := Derive(starting, bonus, 7, model.ClassArcher)
	b := Derive(starting, bonus, 7, model.ClassArcher)
	require.Equal(t, a, b)

	c := Derive(starting, model.EquipmentBonusTotals{}, 7, model.ClassArcher)
	assert.Less(t, c.MaxHealth, a.MaxHealth)
	assert.Zero(t, c.Armor)
}

func TestAura_GrowsWithLevel(t *testing.T) {
	t.Parallel()

	prev := int64(0)
	for level := 1; level <= 100; level += 9 {
		ds := Derive(starting, model.EquipmentBonusTotals{}, level, model.ClassMage)
		assert.Greater(t, ds.Aura, prev, "level %d", level)
		prev = ds.Aura
	}
}

func TestAuraPercent(t *testing.T) {
	t.Parallel()

	assert.Zero(t, AuraPercent(1, 0))
	assert.InDelta(t, 148.5, AuraPercent(100, 0), 1e-9)
	assert.InDelta(t, 16.5, AuraPercent(2, 15), 1e-9)
	assert.Zero(t, AuraPercent(-3, 0))
}

func BenchmarkDerive(b *testing.B) {
	bonus := model.EquipmentBonusTotals{Attributes: model.Attributes{Strength: 40}, WeaponDamageMin: 10, WeaponDamageMax: 20}
	for b.Loop() {
		_ = Derive(starting, bonus, 50, model.ClassWarrior)
	}
}
