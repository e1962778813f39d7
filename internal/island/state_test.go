package island

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_LayersReplacedWholesale(t *testing.T) {
	st := NewState(t.TempDir())

	st.SetTileLayers([]string{"Background", "Floor", "Walls"})
	assert.Equal(t, []string{"Background", "Floor", "Walls"}, st.TileLayers())

	st.SetTileLayers([]string{"Floor"})
	assert.Equal(t, []string{"Floor"}, st.TileLayers(), "set must replace, not append")

	st.SetEntityLayers([]string{"Actors", "Triggers", "Items"})
	assert.Equal(t, []string{"Actors", "Triggers", "Items"}, st.EntityLayers())
}

func TestState_FieldRegistrationOrderPreserved(t *testing.T) {
	st := NewState(t.TempDir())

	st.AddTileField("lava_tile", FieldRegistration{FieldName: "damage_on_touch", FieldType: "int", Options: FieldOptions{Default: IntDefault(10)}})
	st.AddTileField("lava_tile", FieldRegistration{FieldName: "damage_type", FieldType: "enum", Options: FieldOptions{Values: []string{"Physical", "Fire"}}})

	fields := st.TileFields("lava_tile")
	require.Len(t, fields, 2)
	assert.Equal(t, "damage_on_touch", fields[0].FieldName)
	assert.Equal(t, "int", fields[0].FieldType)
	require.NotNil(t, fields[0].Options.Default)
	assert.Equal(t, int64(10), fields[0].Options.Default.Int)
	assert.Equal(t, "damage_type", fields[1].FieldName)
}

func TestState_EntityFieldsSeparateFromTileFields(t *testing.T) {
	st := NewState(t.TempDir())
	st.AddEntityField("npc_basic", FieldRegistration{FieldName: "health", FieldType: "int"})

	assert.Len(t, st.EntityFields("npc_basic"), 1)
	assert.Empty(t, st.TileFields("npc_basic"))
	assert.Equal(t, []string{"npc_basic"}, st.EntityKinds())
}

func TestState_ConfigAbsentUntilSet(t *testing.T) {
	st := NewState(t.TempDir())

	_, ok := st.Config()
	assert.False(t, ok)
	assert.Nil(t, st.MechanicsData())

	st.SetConfig(Island{DockRoomID: 1, Name: "Test"})
	cfg, ok := st.Config()
	require.True(t, ok)
	assert.Equal(t, "Test", cfg.Name)
	require.NotNil(t, st.MechanicsData())
}

func TestState_RoomsAppendOnly_DuplicateIDsKept(t *testing.T) {
	st := NewState(t.TempDir())

	st.AppendRoom(boxRoom(1, 0, 0, 0, 5, 5, 5))
	st.AppendRoom(boxRoom(1, 10, 0, 0, 5, 5, 5))

	assert.Equal(t, 2, st.RoomCount(), "duplicate room ids append duplicate entries")
	rooms := st.Rooms()
	assert.Equal(t, int64(0), rooms[0].PosX)
	assert.Equal(t, int64(10), rooms[1].PosX)
}

func TestState_MechanicsDataIsSnapshot(t *testing.T) {
	st := NewState(t.TempDir())
	st.SetConfig(Island{DockRoomID: 1})
	st.AppendRoom(boxRoom(1, 0, 0, 0, 5, 5, 5))

	data := st.MechanicsData()
	require.NotNil(t, data)
	require.Len(t, data.Rooms, 1)

	st.AppendRoom(boxRoom(2, 5, 0, 0, 5, 5, 5))
	assert.Len(t, data.Rooms, 1, "snapshot must not see later mutations")

	fresh := st.MechanicsData()
	assert.Len(t, fresh.Rooms, 2)
	assert.True(t, fresh.RoomsAreAdjacent(1, 2))
}

func TestState_GLTFRegistryOverwrites(t *testing.T) {
	st := NewState(t.TempDir())

	st.RegisterGLTF("character", "/resolved/a.gltf")
	st.RegisterGLTF("character", "/resolved/b.gltf")

	p, ok := st.GLTFPath("character")
	require.True(t, ok)
	assert.Equal(t, "/resolved/b.gltf", p)
	assert.Equal(t, 1, st.GLTFCount())
}

func TestState_ConcurrentReadersAndWriter(t *testing.T) {
	st := NewState(t.TempDir())
	st.SetConfig(Island{DockRoomID: 1})

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				st.AppendRoom(boxRoom(RoomID(w*50+i), int64(i), 0, 0, 1, 1, 1))
				st.AddTileField(fmt.Sprintf("kind_%d", w), FieldRegistration{FieldName: fmt.Sprintf("f%d", i)})
			}
		}()
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = st.RoomCount()
				_ = st.TileLayers()
				if data := st.MechanicsData(); data != nil {
					_ = data.RoomsAreAdjacent(1, 2)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, st.RoomCount())
}
