package compiler

import (
	. "tlua/ast"
)

func cgStat(fi *funcInfo, node Stat) {
	switch stat := node.(type) {
	case *EmptyStat:
		// nothing to do
	case *BreakStat:
		cgBreakStat(fi, stat)
	case *GotoStat:
		cgGotoStat(fi, stat)
	case *LabelStat:
		cgLabelStat(fi, stat)
	case *DoStat:
		cgDoStat(fi, stat)
	case *WhileStat:
		cgWhileStat(fi, stat)
	case *RepeatStat:
		cgRepeatStat(fi, stat)
	case *IfStat:
		cgIfStat(fi, stat)
	case *ForNumStat:
		cgForNumStat(fi, stat)
	case *ForInStat:
		cgForInStat(fi, stat)
	case *LocalVarDeclStat:
		cgLocalVarDeclStat(fi, stat)
	case *LocalFuncDefStat:
		cgLocalFuncDefStat(fi, stat)
	case *AssignStat:
		cgAssignStat(fi, stat)
	case *FuncCallExp:
		cgFuncCallStat(fi, stat)
	}
}

func cgLabelStat(fi *funcInfo, node *LabelStat) {
	fi.defineLabel(node.Name)
}

func cgGotoStat(fi *funcInfo, node *GotoStat) {
	pc := fi.emitJmp(node.Line, 0, 0)
	fi.addGoto(node.Name, pc, node.Line)
}

func cgFuncCallStat(fi *funcInfo, node *FuncCallExp) {
	r := fi.allocReg()
	cgFuncCallExp(fi, node, r, 0)
	fi.freeReg()
}

func cgBreakStat(fi *funcInfo, node *BreakStat) {
	closeTBCVarsFrom(fi, fi.loopScopeLv(), node.Line)
	pc := fi.emitJmp(node.Line, 0, 0)
	fi.addBreakJmp(pc)
}

func cgDoStat(fi *funcInfo, node *DoStat) {
	fi.enterScope(false)
	cgBlock(fi, node.Block)
	closeTBCVars(fi, node.Block.LastLine)
	fi.closeOpenUpvals(node.Block.LastLine)
	fi.exitScope(fi.pc() + 1)
}

// while exp do block end
func cgWhileStat(fi *funcInfo, node *WhileStat) {
	pcBeforeExp := fi.pc()

	oldRegs := fi.usedRegs
	a, _ := expToOpArg(fi, node.Exp, ARG_REG)
	fi.usedRegs = oldRegs

	fi.emitTest(lineOf(node.Exp), a, 0)
	pcJmpToEnd := fi.emitJmp(0, 0, 0)

	fi.enterScope(true)
	cgBlock(fi, node.Block)
	closeTBCVars(fi, node.Block.LastLine)
	fi.closeOpenUpvals(node.Block.LastLine)
	pcJmpToHead := fi.emitJmp(node.Block.LastLine, 0, 0)
	fi.fixSbx(pcJmpToHead, pcBeforeExp-pcJmpToHead-1)
	fi.exitScope(fi.pc() + 1)

	fi.fixSbx(pcJmpToEnd, fi.pc()-pcJmpToEnd)
}

// repeat block until exp — exp is compiled while the block's scope is
// still open, since it can reference locals declared inside the block.
func cgRepeatStat(fi *funcInfo, node *RepeatStat) {
	pcBeforeBlock := fi.pc() + 1

	fi.enterScope(true)
	cgBlock(fi, node.Block)

	oldRegs := fi.usedRegs
	a, _ := expToOpArg(fi, node.Exp, ARG_REG)
	fi.usedRegs = oldRegs

	line := lineOf(node.Exp)
	closeTBCVars(fi, line)
	fi.emitTest(line, a, 0)
	pcJmpToHead := fi.emitJmp(line, fi.getJmpArgA(), 0)
	fi.fixSbx(pcJmpToHead, pcBeforeBlock-pcJmpToHead-1)

	fi.exitScope(fi.pc() + 1)
}

// if exp then block {elseif exp then block} [else block] end
func cgIfStat(fi *funcInfo, node *IfStat) {
	pcJmpToEnds := make([]int, len(node.Exps))
	pcJmpToNextExp := -1

	for i, exp := range node.Exps {
		if pcJmpToNextExp >= 0 {
			fi.fixSbx(pcJmpToNextExp, fi.pc()-pcJmpToNextExp)
		}

		oldRegs := fi.usedRegs
		a, _ := expToOpArg(fi, exp, ARG_REG)
		fi.usedRegs = oldRegs

		fi.emitTest(lineOf(exp), a, 0)
		pcJmpToNextExp = fi.emitJmp(lineOf(exp), 0, 0)

		block := node.Blocks[i]
		fi.enterScope(false)
		cgBlock(fi, block)
		closeTBCVars(fi, block.LastLine)
		fi.closeOpenUpvals(block.LastLine)
		fi.exitScope(fi.pc() + 1)

		if i < len(node.Exps)-1 {
			pcJmpToEnds[i] = fi.emitJmp(block.LastLine, 0, 0)
		} else {
			pcJmpToEnds[i] = pcJmpToNextExp
		}
	}

	for _, pc := range pcJmpToEnds {
		fi.fixSbx(pc, fi.pc()-pc)
	}
}

// for Name = init, limit [, step] do block end
func cgForNumStat(fi *funcInfo, node *ForNumStat) {
	forIdxName := "(for index)"
	forLimitName := "(for limit)"
	forStepName := "(for step)"

	fi.enterScope(true)

	_prepForExp(fi, node.InitExp, forIdxName)
	_prepForExp(fi, node.LimitExp, forLimitName)
	_prepForExp(fi, node.StepExp, forStepName)

	fi.addLocVar(node.VarName, fi.pc()+2)

	a := fi.usedRegs - 4
	pcForPrep := fi.emitForPrep(node.LineOfFor, a, 0)
	cgBlock(fi, node.Block)
	closeTBCVars(fi, node.LineOfDo)
	fi.closeOpenUpvals(node.LineOfDo)

	pcForLoop := fi.emitForLoop(node.LineOfDo, a, 0)

	fi.fixSbx(pcForPrep, pcForLoop-pcForPrep-1)
	fi.fixSbx(pcForLoop, pcForPrep-pcForLoop)

	fi.exitScope(fi.pc())
	fi.fixEndPC(forIdxName, 1)
	fi.fixEndPC(forLimitName, 1)
	fi.fixEndPC(forStepName, 1)
}

func _prepForExp(fi *funcInfo, exp Exp, name string) {
	r := fi.addLocVar(name, 0)
	cgExp(fi, exp, r, 1)
}

// for namelist in explist do block end
func cgForInStat(fi *funcInfo, node *ForInStat) {
	forGeneratorName := "(for generator)"
	forStateName := "(for state)"
	forControlName := "(for control)"

	fi.enterScope(true)

	_prepForInExps(fi, node.ExpList, forGeneratorName, forStateName, forControlName)

	for _, name := range node.NameList {
		fi.addLocVar(name, fi.pc()+2)
	}

	pcJmpToTFC := fi.emitJmp(node.LineOfDo, 0, 0)
	cgBlock(fi, node.Block)
	closeTBCVars(fi, node.LineOfDo)
	fi.closeOpenUpvals(node.LineOfDo)
	fi.fixSbx(pcJmpToTFC, fi.pc()-pcJmpToTFC)

	rGenerator := fi.slotOfLocVar(forGeneratorName)
	line := node.Block.LastLine
	fi.emitTForCall(line, rGenerator, len(node.NameList))
	pcForLoop := fi.pc() + 1
	fi.emitTForLoop(line, rGenerator+2, 0)
	fi.fixSbx(pcForLoop, pcJmpToTFC-pcForLoop-1)

	fi.exitScope(fi.pc())
	fi.fixEndPC(forGeneratorName, 1)
	fi.fixEndPC(forStateName, 1)
	fi.fixEndPC(forControlName, 1)
}

// explist for generic-for is adjusted to exactly 3 values: the iterator
// function, the invariant state, and the initial control value.
func _prepForInExps(fi *funcInfo, exps []Exp, names ...string) {
	nExps := len(exps)
	nNames := len(names)

	for i := 0; i < nExps && i < nNames; i++ {
		r := fi.addLocVar(names[i], 0)
		if i == nExps-1 && i < nNames-1 && isVarargOrFuncCall(exps[i]) {
			cgExp(fi, exps[i], r, nNames-i)
			for j := i + 1; j < nNames; j++ {
				fi.allocReg()
			}
			return
		}
		cgExp(fi, exps[i], r, 1)
	}
	for i := nExps; i < nNames; i++ {
		r := fi.addLocVar(names[i], 0)
		fi.emitLoadNil(0, r, 1)
	}
}

// local attnamelist ['=' explist]
func cgLocalVarDeclStat(fi *funcInfo, node *LocalVarDeclStat) {
	exps := node.ExpList
	nExps := len(exps)
	nNames := len(node.NameList)

	oldRegs := fi.usedRegs

	if nExps == nNames {
		for _, exp := range exps {
			a := fi.allocReg()
			cgExp(fi, exp, a, 1)
		}
	} else if nExps > nNames {
		for i, exp := range exps {
			a := fi.allocReg()
			if i == nExps-1 && isVarargOrFuncCall(exp) {
				cgExp(fi, exp, a, 0)
			} else {
				cgExp(fi, exp, a, 1)
			}
		}
		fi.freeRegs(nExps - nNames)
	} else { // nExps < nNames
		multRet := false
		for i, exp := range exps {
			a := fi.allocReg()
			if i == nExps-1 && isVarargOrFuncCall(exp) {
				multRet = true
				n := nNames - nExps + 1
				cgExp(fi, exp, a, n)
				fi.allocRegs(n - 1)
			} else {
				cgExp(fi, exp, a, 1)
			}
		}
		if !multRet {
			n := nNames - nExps
			a := fi.allocRegs(n)
			fi.emitLoadNil(node.LastLine, a, n)
		}
	}

	fi.usedRegs = oldRegs
	for i, name := range node.NameList {
		slot := fi.addLocVar(name, fi.pc()+1)
		if i < len(node.Attribs) {
			locVar := fi.locVarOf(name)
			switch node.Attribs[i] {
			case "const":
				locVar.isConst = true
			case "close":
				locVar.isConst = true
				locVar.isClose = true
				fi.emitTBC(node.LastLine, locVar.slot)
			}
		}
		_ = slot
	}
}

// local function Name funcbody — the name is in scope inside its own
// body, unlike a plain `local name = function() end`.
func cgLocalFuncDefStat(fi *funcInfo, node *LocalFuncDefStat) {
	fi.addLocVar(node.Name, fi.pc()+2)
	cgFuncDefExp(fi, node.Exp, fi.usedRegs-1)
}

// varlist '=' explist
func cgAssignStat(fi *funcInfo, node *AssignStat) {
	exps := node.ExpList
	nExps := len(exps)
	nVars := len(node.VarList)

	tRegs := make([]int, nVars)
	kRegs := make([]int, nVars)
	vRegs := make([]int, nVars)

	oldRegs := fi.usedRegs
	for i, exp := range node.VarList {
		if taExp, ok := exp.(*TableAccessExp); ok {
			tRegs[i] = fi.allocReg()
			cgExp(fi, taExp.PrefixExp, tRegs[i], 1)
			kRegs[i] = fi.allocReg()
			cgExp(fi, taExp.KeyExp, kRegs[i], 1)
		}
	}
	for i := range node.VarList {
		vRegs[i] = fi.usedRegs + i
	}

	if nExps >= nVars {
		for i, exp := range exps {
			a := fi.allocReg()
			if i >= nVars-1 && i == nExps-1 && isVarargOrFuncCall(exp) {
				cgExp(fi, exp, a, 0)
			} else {
				cgExp(fi, exp, a, 1)
			}
		}
	} else { // nVars > nExps
		multRet := false
		for i, exp := range exps {
			a := fi.allocReg()
			if i == nExps-1 && isVarargOrFuncCall(exp) {
				multRet = true
				n := nVars - nExps + 1
				cgExp(fi, exp, a, n)
				fi.allocRegs(n - 1)
			} else {
				cgExp(fi, exp, a, 1)
			}
		}
		if !multRet {
			n := nVars - nExps
			a := fi.allocRegs(n)
			fi.emitLoadNil(node.LastLine, a, n)
		}
	}

	for i, exp := range node.VarList {
		v := vRegs[i]
		if nameExp, ok := exp.(*NameExp); ok {
			varName := nameExp.Name
			if locVar := fi.locVarOf(varName); locVar != nil {
				if locVar.isConst {
					panic("attempt to assign to const variable '" + varName + "'")
				}
				fi.emitMove(node.LastLine, locVar.slot, v)
			} else if idx := fi.indexOfUpval(varName); idx >= 0 {
				fi.emitSetUpval(node.LastLine, v, idx)
			} else { // global
				a := fi.slotOfLocVar("_ENV")
				if a >= 0 {
					fi.emitSetTable(node.LastLine, a, 0x100+fi.indexOfConstant(varName), v)
				} else {
					idx := fi.indexOfUpval("_ENV")
					fi.emitSetTabUp(node.LastLine, idx, 0x100+fi.indexOfConstant(varName), v)
				}
			}
		} else {
			fi.emitSetTable(node.LastLine, tRegs[i], kRegs[i], v)
		}
	}

	fi.usedRegs = oldRegs
}
