package insts

import "fmt"

// String formats the instruction in conventional CHIP-8 assembler syntax,
// for example "LD V1, $12" or "DRW V0, V1, $5". Unknown words are rendered
// as a raw data directive.
func (i *Instruction) String() string {
	name := i.Op.String()

	switch i.Op {
	case OpUnknown:
		return fmt.Sprintf("DW $%04X", i.Raw)
	case OpCLS, OpRET:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}

	switch i.Format {
	case FormatRegImm:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case FormatRegReg:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case FormatReg:
		return fmt.Sprintf("%s V%X", name, i.X)
	case FormatDraw:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	}

	return name
}
