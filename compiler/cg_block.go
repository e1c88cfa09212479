package compiler

import . "tlua/ast"

func cgBlock(fi *funcInfo, node *Block) {
	for _, stat := range node.Stats {
		cgStat(fi, stat)
	}

	if node.RetExps != nil {
		cgRetStat(fi, node.RetExps, node.LastLine)
	}
}

// return explist — closes every to-be-closed local still open in this
// function before handing control back, per spec.md §4.5.2/§4.5.4: a
// return is a scope-exit path like any other, just for every scope at
// once, so the close threshold is register 0 rather than a block-local
// minimum.
func cgRetStat(fi *funcInfo, exps []Exp, lastLine int) {
	nExps := len(exps)
	if nExps == 0 {
		fi.emitClose(lastLine, 0)
		fi.emitReturn(lastLine, 0, 0)
		return
	}

	if nExps == 1 {
		if nameExp, ok := exps[0].(*NameExp); ok {
			if r := fi.slotOfLocVar(nameExp.Name); r >= 0 {
				fi.emitClose(lastLine, 0)
				fi.emitReturn(lastLine, r, 1)
				return
			}
		}
		if fcExp, ok := exps[0].(*FuncCallExp); ok && !fi.hasOpenTBC() {
			r := fi.allocReg()
			cgTailCallExp(fi, fcExp, r)
			fi.freeReg()
			fi.emitReturn(lastLine, r, -1)
			return
		}
	}

	multRet := isVarargOrFuncCall(exps[nExps-1])
	for i, exp := range exps {
		r := fi.allocReg()
		if i == nExps-1 && multRet {
			cgExp(fi, exp, r, -1)
		} else {
			cgExp(fi, exp, r, 1)
		}
	}
	fi.freeRegs(nExps)

	a := fi.usedRegs
	fi.emitClose(lastLine, 0)
	if multRet {
		fi.emitReturn(lastLine, a, -1)
	} else {
		fi.emitReturn(lastLine, a, nExps)
	}
}

// closeTBCVars emits a single OP_CLOSE at the lowest register holding a
// <close> local declared in the current lexical scope (the VM then closes
// every to-be-closed variable at or above it, last declared first),
// before the scope's block exit jump is emitted.
func closeTBCVars(fi *funcInfo, line int) {
	closeTBCVarsFrom(fi, fi.scopeLv, line)
}

// closeTBCVarsFrom emits OP_CLOSE for any <close> local declared at or
// above scope level lv — used for break, which may jump out of several
// nested scopes (an inner if inside the loop body) at once, unlike the
// exact-scope-level closeTBCVars used at ordinary block fallthrough.
func closeTBCVarsFrom(fi *funcInfo, lv int, line int) {
	minSlot := -1
	for _, entry := range fi.locNames {
		for v := entry; v != nil && v.scopeLv >= lv; v = v.prev {
			if v.isClose && (minSlot < 0 || v.slot < minSlot) {
				minSlot = v.slot
			}
		}
	}
	if minSlot >= 0 {
		fi.emitClose(line, minSlot)
	}
}
