//go:build !nogpu

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/gogpu/cellgrid"
	"github.com/gogpu/cellgrid/atlas"
)

// gridScript runs a Lua script against a grid. The script defines a
// global tick(frame) function; the cell API below is installed as Lua
// globals before the script loads.
//
//	grid_width() -> int
//	grid_height() -> int
//	set_cell(x, y, glyph [, fr, fg, fb [, br, bg, bb]])
//	set_glyph(x, y, glyph)
//	fill(glyph, fr, fg, fb)
//	clear()
//	glyph(str) -> int        glyph index of the first rune
type gridScript struct {
	state *lua.LState
	grid  *cellgrid.Grid
	fn    lua.LValue
}

func loadScript(path string, grid *cellgrid.Grid) (*gridScript, error) {
	s := &gridScript{
		state: lua.NewState(),
		grid:  grid,
	}
	s.register()

	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, err
	}
	fn := s.state.GetGlobal("tick")
	if fn.Type() != lua.LTFunction {
		s.state.Close()
		return nil, fmt.Errorf("script %s defines no tick function", path)
	}
	s.fn = fn
	return s, nil
}

func (s *gridScript) register() {
	L := s.state

	L.SetGlobal("grid_width", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.grid.Width()))
		return 1
	}))
	L.SetGlobal("grid_height", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.grid.Height()))
		return 1
	}))
	L.SetGlobal("set_cell", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		c := cellgrid.Cell{
			Glyph: uint32(L.CheckInt(3)),
			FG:    cellgrid.White,
			BG:    cellgrid.Black,
		}
		if L.GetTop() >= 6 {
			c.FG = cellgrid.Color{
				R: uint8(L.CheckInt(4)),
				G: uint8(L.CheckInt(5)),
				B: uint8(L.CheckInt(6)),
				A: 255,
			}
		}
		if L.GetTop() >= 9 {
			c.BG = cellgrid.Color{
				R: uint8(L.CheckInt(7)),
				G: uint8(L.CheckInt(8)),
				B: uint8(L.CheckInt(9)),
				A: 255,
			}
		}
		s.grid.Set(x, y, c) // out-of-bounds writes are ignored
		return 0
	}))
	L.SetGlobal("set_glyph", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckInt(1)
		y := L.CheckInt(2)
		if c, err := s.grid.At(x, y); err == nil {
			c.Glyph = uint32(L.CheckInt(3))
			s.grid.Set(x, y, c)
		}
		return 0
	}))
	L.SetGlobal("fill", L.NewFunction(func(L *lua.LState) int {
		s.grid.Fill(cellgrid.Cell{
			Glyph: uint32(L.CheckInt(1)),
			FG: cellgrid.Color{
				R: uint8(L.CheckInt(2)),
				G: uint8(L.CheckInt(3)),
				B: uint8(L.CheckInt(4)),
				A: 255,
			},
			BG: cellgrid.Black,
		})
		return 0
	}))
	L.SetGlobal("clear", L.NewFunction(func(L *lua.LState) int {
		s.grid.Clear()
		return 0
	}))
	L.SetGlobal("glyph", L.NewFunction(func(L *lua.LState) int {
		str := L.CheckString(1)
		var idx uint32
		for _, r := range str {
			idx = atlas.GlyphForRune(r)
			break
		}
		L.Push(lua.LNumber(idx))
		return 1
	}))
}

// tick invokes the script's tick(frame) function.
func (s *gridScript) tick(frame int) error {
	return s.state.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(frame))
}

func (s *gridScript) close() {
	s.state.Close()
}
