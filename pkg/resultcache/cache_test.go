package resultcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

func sampleLibraryAndResult() (*semantic.InstructionLibrary, semantic.Expr, *semantic.SearchResult) {
	addType := semantic.OperatorType{TypeID: semantic.OpAdd, Arity: 2}
	sem := semantic.NewOperator(addType, semantic.OperandType{}, "add",
		semantic.NewAbstract("dst", semantic.OperandType{TypeID: 1}),
		semantic.NewAbstract("imm", semantic.OperandType{TypeID: semantic.OpMemRef}),
	)
	insn := &semantic.Instruction{Name: "ADDI", Semantic: sem, Cost: 1}
	lib := semantic.NewInstructionLibrary([]*semantic.Instruction{insn}, nil)

	goal := semantic.NewOperator(addType, semantic.OperandType{}, "add",
		semantic.NewRegister("r1", semantic.OperandType{TypeID: 1}),
		semantic.NewConstant("c", semantic.OperandType{TypeID: 1}, 4),
	)
	res := semantic.Search(goal, lib, 4)
	return lib, goal, res
}

func TestCacheStoreAndLoadRoundTrip(t *testing.T) {
	lib, goal, res := sampleLibraryAndResult()
	require.False(t, res.Failed())

	cache, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Store("add-imm", goal, res, lib))

	loaded, ok, err := cache.Load("add-imm", goal, lib)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, res.Cost, loaded.Cost)
	require.Len(t, loaded.Instructions, 1)
	require.Equal(t, "ADDI", loaded.Instructions[0].Instruction.Name)
}

func TestCacheLoadMissReturnsNotOK(t *testing.T) {
	lib, goal, _ := sampleLibraryAndResult()
	cache, err := Open(t.TempDir())
	require.NoError(t, err)

	_, ok, err := cache.Load("never-stored", goal, lib)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheLoadCorruptFileReturnsError(t *testing.T) {
	lib, goal, _ := sampleLibraryAndResult()
	dir := t.TempDir()
	cache, err := Open(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, fileName("add-imm", goal))
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o644))

	_, _, err = cache.Load("add-imm", goal, lib)
	require.Error(t, err)
}

func TestCacheLoadStaleEntryReturnsError(t *testing.T) {
	lib, goal, res := sampleLibraryAndResult()
	cache, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Store("add-imm", goal, res, lib))

	emptyLib := semantic.NewInstructionLibrary(nil, nil)
	_, _, err = cache.Load("add-imm", goal, emptyLib)
	require.Error(t, err)
}
