// Copyright © 2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package phy

import "github.com/platinasystems/qmpphy/internal/reg"

// serdes (COM) block registers
const (
	comBgTimer             = 0x00c
	comSscEnCenter         = 0x010
	comSscAdjPer1          = 0x014
	comSscAdjPer2          = 0x018
	comSscPer1             = 0x01c
	comSscPer2             = 0x020
	comSscStepSize1        = 0x024
	comSscStepSize2        = 0x028
	comBiasEnClkbuflrEn    = 0x034
	comClkEnable1          = 0x038
	comSysClkCtrl          = 0x03c
	comSysclkBufEnable     = 0x040
	comPllIvco             = 0x048
	comBgTrim              = 0x070
	comCpCtrlMode0         = 0x078
	comPllRctrlMode0       = 0x084
	comPllCctrlMode0       = 0x090
	comLockCmp1Mode0       = 0x098
	comLockCmp2Mode0       = 0x09c
	comLockCmp3Mode0       = 0x0a0
	comBiasEnCtrlByPsm     = 0x0a8
	comSysclkEnSel         = 0x0ac
	comResetsmCntrl        = 0x0b4
	comResetsmCntrl2       = 0x0b8
	comLockCmpEn           = 0x0c8
	comLockCmpCfg          = 0x0cc
	comDecStartMode0       = 0x0d0
	comDivFracStart1Mode0  = 0x0dc
	comDivFracStart2Mode0  = 0x0e0
	comDivFracStart3Mode0  = 0x0e4
	comIntegloopInitval    = 0x100
	comIntegloopGain0Mode0 = 0x108
	comIntegloopGain1Mode0 = 0x10c
	comVcoTuneCtrl         = 0x124
	comVcoTuneMap          = 0x128
	comVcoTune1Mode0       = 0x12c
	comVcoTune2Mode0       = 0x130
	comCmnStatus           = 0x15c
	comBgCtrl              = 0x170
	comClkSelect           = 0x174
	comHsclkSel            = 0x178
	comCoreclkDiv          = 0x184
	comCoreClkEn           = 0x18c
	comCReadyStatus        = 0x190
	comCmnConfig           = 0x194
	comCmnMode             = 0x198
	comSvsModeClkSel       = 0x19c
)

// v3 tx lane registers
const (
	txClkbufEnable           = 0x008
	txEmpPost1Lvl            = 0x00c
	txDrvLvl                 = 0x01c
	txResetTsyncEn           = 0x024
	txPreStallLdoBoostEn     = 0x028
	txBand                   = 0x02c
	txInterfaceSelect        = 0x034
	txResCodeLaneOffsetTx    = 0x044
	txResCodeLaneOffsetRx    = 0x048
	txTransceiverBiasEn      = 0x05c
	txHighzDrvrEn            = 0x060
	txParrateRecDetectIdleEn = 0x068
	txLaneMode1              = 0x08c
	txRcvDetectLvl2          = 0x0a4
	txTranDrvrEmpEn          = 0x0c0
	txInterfaceMode          = 0x0c4
	txVmodeCtrl1             = 0x0c8
)

// v3 rx lane registers
const (
	rxUcdrFoGain                = 0x008
	rxUcdrSoGain                = 0x014
	rxUcdrFastlockFoGain        = 0x030
	rxUcdrSoSaturationAndEnable = 0x034
	rxUcdrFastlockCountLow      = 0x040
	rxUcdrFastlockCountHigh     = 0x044
	rxUcdrPiControls            = 0x048
	rxVgaCalCntrl2              = 0x0d0
	rxEquAdaptorCntrl2          = 0x0d4
	rxEquAdaptorCntrl3          = 0x0d8
	rxEquAdaptorCntrl4          = 0x0dc
	rxEqOffsetAdaptorCntrl1     = 0x0f8
	rxOffsetAdaptorCntrl2       = 0x0fc
	rxSigdetEnables             = 0x100
	rxSigdetCntrl               = 0x104
	rxSigdetDeglitchCntrl       = 0x10c
	rxModeRate00                = 0x11c
)

// v3 PCS registers
const (
	pcsSwReset                 = 0x000
	pcsPowerDownControl        = 0x004
	pcsStartControl            = 0x008
	pcsTxmgnV0                 = 0x00c
	pcsTxmgnV1                 = 0x010
	pcsTxmgnV2                 = 0x014
	pcsTxmgnV3                 = 0x018
	pcsTxmgnV4                 = 0x01c
	pcsTxmgnLs                 = 0x020
	pcsTxdeemphM6dbV0          = 0x024
	pcsTxdeemphM3p5dbV0        = 0x028
	pcsTxdeemphM6dbV1          = 0x02c
	pcsTxdeemphM3p5dbV1        = 0x030
	pcsTxdeemphM6dbV2          = 0x034
	pcsTxdeemphM3p5dbV2        = 0x038
	pcsTxdeemphM6dbV3          = 0x03c
	pcsTxdeemphM3p5dbV3        = 0x040
	pcsTxdeemphM6dbV4          = 0x044
	pcsTxdeemphM3p5dbV4        = 0x048
	pcsTxdeemphM6dbLs          = 0x04c
	pcsTxdeemphM3p5dbLs        = 0x050
	pcsRateSlewCntrl           = 0x05c
	pcsPowerStateConfig2       = 0x064
	pcsLockDetectConfig1       = 0x080
	pcsLockDetectConfig2       = 0x084
	pcsLockDetectConfig3       = 0x088
	pcsPwrupResetDlyTimeAuxclk = 0x0a0
	pcsTsyncRsyncTime          = 0x0a4
	pcsRcvrDtctDlyP1u2L        = 0x0a8
	pcsRcvrDtctDlyP1u2H        = 0x0ac
	pcsRcvrDtctDlyU3L          = 0x0b0
	pcsRcvrDtctDlyU3H          = 0x0b4
	pcsFllCntrl1               = 0x0c4
	pcsFllCntrl2               = 0x0c8
	pcsFllCntValL              = 0x0cc
	pcsFllCntValHTol           = 0x0d0
	pcsFllManCode              = 0x0d4
	pcsAutonomousModeCtrl      = 0x0d8
	pcsLfpsRxtermIrqClear      = 0x0dc
	pcsPcsStatus               = 0x174
	pcsRxSigdetLvl             = 0x1d8
	pcsRxeqtrainingWaitTime    = 0x1dc
	pcsRxeqtrainingRunTime     = 0x1e0
	pcsLfpsTxEcstartEqtlock    = 0x1e4
)

// DP PHY block registers
const (
	dpPhyCfg              = 0x010
	dpPhyPdCtl            = 0x018
	dpPhyMode             = 0x01c
	dpPhyAuxCfg0          = 0x020
	dpPhyAuxInterruptMask = 0x048
	dpPhyVcoDiv           = 0x064
	dpPhyTx0Tx1LaneCtl    = 0x06c
	dpPhyTx2Tx3LaneCtl    = 0x088
	dpPhyStatus           = 0x0c0
)

const PipeClockRate = 125000000

var (
	UsbRegsV3 = UsbRegs{
		SwReset:            pcsSwReset,
		StartCtrl:          pcsStartControl,
		PcsStatus:          pcsPcsStatus,
		AutonomousModeCtrl: pcsAutonomousModeCtrl,
		LfpsRxtermIrqClear: pcsLfpsRxtermIrqClear,
		PowerDownControl:   pcsPowerDownControl,
	}

	DpRegsV3 = DpRegs{
		Cfg:               dpPhyCfg,
		PdCtl:             dpPhyPdCtl,
		Mode:              dpPhyMode,
		AuxCfg0:           dpPhyAuxCfg0,
		AuxInterruptMask:  dpPhyAuxInterruptMask,
		VcoDiv:            dpPhyVcoDiv,
		Tx0Tx1LaneCtl:     dpPhyTx0Tx1LaneCtl,
		Tx2Tx3LaneCtl:     dpPhyTx2Tx3LaneCtl,
		Status:            dpPhyStatus,
		BiasEnClkbuflrEn:  comBiasEnClkbuflrEn,
		ResetsmCntrl:      comResetsmCntrl,
		CReadyStatus:      comCReadyStatus,
		CmnStatus:         comCmnStatus,
		TxDrvLvl:          txDrvLvl,
		TxEmpPost1Lvl:     txEmpPost1Lvl,
		TxHighzDrvrEn:     txHighzDrvrEn,
		TxTransceiverBias: txTransceiverBiasEn,
	}

	UsbOffsetsQCM2290 = UsbOffsets{
		Serdes:  0x000,
		Pcs:     0xc00,
		PcsMisc: 0xa00,
		Tx:      0x200,
		Rx:      0x400,
		Tx2:     0x600,
		Rx2:     0x800,
	}

	DpOffsetsQCS615 = DpOffsets{
		Serdes: 0x0c00,
		TxA:    0x0400,
		TxB:    0x0800,
		Phy:    0x0000,
	}

	DpPreEmphasisV3 = SwingTable{
		{0x00, 0x0b, 0x12, 0xff},
		{0x00, 0x0a, 0x12, 0xff},
		{0x00, 0x0c, 0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}

	DpVoltageSwingV3 = SwingTable{
		{0x07, 0x0f, 0x14, 0xff},
		{0x11, 0x1d, 0x1f, 0xff},
		{0x18, 0x1f, 0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}

	PhyClocks   = []string{"aux", "cfg_ahb", "ref", "com_aux"}
	UsbRails    = []string{"vdda-phy", "vdda-pll"}
	UsbResets   = []string{"phy_phy", "phy"}
	DpResets    = []string{"phy"}
	DpRails     = []Rail{{"vdda-phy", 21800}, {"vdda-pll", 36000}}
	DpAuxCfg1V3 = []uint32{0x13, 0x23, 0x1d}
)

var qcm2290UsbSerdes = reg.Table{
	{Offset: comSysclkEnSel, Value: 0x14},
	{Offset: comBiasEnClkbuflrEn, Value: 0x08},
	{Offset: comClkSelect, Value: 0x30},
	{Offset: comSysClkCtrl, Value: 0x06},
	{Offset: comResetsmCntrl, Value: 0x00},
	{Offset: comResetsmCntrl2, Value: 0x08},
	{Offset: comBgTrim, Value: 0x0f},
	{Offset: comSvsModeClkSel, Value: 0x01},
	{Offset: comHsclkSel, Value: 0x00},
	{Offset: comDecStartMode0, Value: 0x82},
	{Offset: comDivFracStart1Mode0, Value: 0x55},
	{Offset: comDivFracStart2Mode0, Value: 0x55},
	{Offset: comDivFracStart3Mode0, Value: 0x03},
	{Offset: comCpCtrlMode0, Value: 0x0b},
	{Offset: comPllRctrlMode0, Value: 0x16},
	{Offset: comPllCctrlMode0, Value: 0x28},
	{Offset: comIntegloopGain0Mode0, Value: 0x80},
	{Offset: comIntegloopGain1Mode0, Value: 0x00},
	{Offset: comCoreclkDiv, Value: 0x0a},
	{Offset: comLockCmp1Mode0, Value: 0x15},
	{Offset: comLockCmp2Mode0, Value: 0x34},
	{Offset: comLockCmp3Mode0, Value: 0x00},
	{Offset: comLockCmpEn, Value: 0x00},
	{Offset: comCoreClkEn, Value: 0x00},
	{Offset: comLockCmpCfg, Value: 0x00},
	{Offset: comVcoTuneMap, Value: 0x00},
	{Offset: comBgTimer, Value: 0x0a},
	{Offset: comSscEnCenter, Value: 0x01},
	{Offset: comSscPer1, Value: 0x31},
	{Offset: comSscPer2, Value: 0x01},
	{Offset: comSscAdjPer1, Value: 0x00},
	{Offset: comSscAdjPer2, Value: 0x00},
	{Offset: comSscStepSize1, Value: 0xde},
	{Offset: comSscStepSize2, Value: 0x07},
	{Offset: comPllIvco, Value: 0x0f},
	{Offset: comCmnConfig, Value: 0x06},
	{Offset: comIntegloopInitval, Value: 0x80},
	{Offset: comBiasEnCtrlByPsm, Value: 0x01},
}

var qcm2290UsbTx = reg.Table{
	{Offset: txHighzDrvrEn, Value: 0x10},
	{Offset: txRcvDetectLvl2, Value: 0x12},
	{Offset: txLaneMode1, Value: 0xc6},
	{Offset: txResCodeLaneOffsetTx, Value: 0x00},
	{Offset: txResCodeLaneOffsetRx, Value: 0x00},
}

func usbRx(piControls uint32) reg.Table {
	return reg.Table{
		{Offset: rxUcdrFastlockFoGain, Value: 0x0b},
		{Offset: rxUcdrPiControls, Value: piControls},
		{Offset: rxUcdrFastlockCountLow, Value: 0x00},
		{Offset: rxUcdrFastlockCountHigh, Value: 0x00},
		{Offset: rxUcdrFoGain, Value: 0x0a},
		{Offset: rxUcdrSoGain, Value: 0x06},
		{Offset: rxUcdrSoSaturationAndEnable, Value: 0x75},
		{Offset: rxEquAdaptorCntrl2, Value: 0x02},
		{Offset: rxEquAdaptorCntrl3, Value: 0x4e},
		{Offset: rxEquAdaptorCntrl4, Value: 0x18},
		{Offset: rxEqOffsetAdaptorCntrl1, Value: 0x77},
		{Offset: rxOffsetAdaptorCntrl2, Value: 0x80},
		{Offset: rxVgaCalCntrl2, Value: 0x0a},
		{Offset: rxSigdetCntrl, Value: 0x03},
		{Offset: rxSigdetDeglitchCntrl, Value: 0x16},
		{Offset: rxSigdetEnables, Value: 0x00},
		{Offset: rxModeRate00, Value: 0x00},
	}
}

var qcm2290UsbPcs = reg.Table{
	{Offset: pcsTxmgnV0, Value: 0x9f},
	{Offset: pcsTxdeemphM6dbV0, Value: 0x17},
	{Offset: pcsTxdeemphM3p5dbV0, Value: 0x0f},
	{Offset: pcsFllCntrl2, Value: 0x83},
	{Offset: pcsFllCntrl1, Value: 0x02},
	{Offset: pcsFllCntValL, Value: 0x09},
	{Offset: pcsFllCntValHTol, Value: 0xa2},
	{Offset: pcsFllManCode, Value: 0x85},
	{Offset: pcsLockDetectConfig1, Value: 0xd1},
	{Offset: pcsLockDetectConfig2, Value: 0x1f},
	{Offset: pcsLockDetectConfig3, Value: 0x47},
	{Offset: pcsRxeqtrainingWaitTime, Value: 0x75},
	{Offset: pcsRxeqtrainingRunTime, Value: 0x13},
	{Offset: pcsLfpsTxEcstartEqtlock, Value: 0x86},
	{Offset: pcsPwrupResetDlyTimeAuxclk, Value: 0x04},
	{Offset: pcsTsyncRsyncTime, Value: 0x44},
	{Offset: pcsRcvrDtctDlyP1u2L, Value: 0xe7},
	{Offset: pcsRcvrDtctDlyP1u2H, Value: 0x03},
	{Offset: pcsRcvrDtctDlyU3L, Value: 0x40},
	{Offset: pcsRcvrDtctDlyU3H, Value: 0x00},
	{Offset: pcsRxSigdetLvl, Value: 0x88},
}

var msm8998UsbSerdes = reg.Table{
	{Offset: comClkSelect, Value: 0x30},
	{Offset: comBiasEnClkbuflrEn, Value: 0x04},
	{Offset: comSysclkEnSel, Value: 0x14},
	{Offset: comSysClkCtrl, Value: 0x06},
	{Offset: comResetsmCntrl2, Value: 0x08},
	{Offset: comCmnConfig, Value: 0x06},
	{Offset: comSvsModeClkSel, Value: 0x01},
	{Offset: comHsclkSel, Value: 0x80},
	{Offset: comDecStartMode0, Value: 0x82},
	{Offset: comDivFracStart1Mode0, Value: 0xab},
	{Offset: comDivFracStart2Mode0, Value: 0xea},
	{Offset: comDivFracStart3Mode0, Value: 0x02},
	{Offset: comCpCtrlMode0, Value: 0x06},
	{Offset: comPllRctrlMode0, Value: 0x16},
	{Offset: comPllCctrlMode0, Value: 0x36},
	{Offset: comIntegloopGain1Mode0, Value: 0x00},
	{Offset: comIntegloopGain0Mode0, Value: 0x3f},
	{Offset: comVcoTune2Mode0, Value: 0x01},
	{Offset: comVcoTune1Mode0, Value: 0xc9},
	{Offset: comCoreclkDiv, Value: 0x0a},
	{Offset: comLockCmp3Mode0, Value: 0x00},
	{Offset: comLockCmp2Mode0, Value: 0x34},
	{Offset: comLockCmp1Mode0, Value: 0x15},
	{Offset: comLockCmpEn, Value: 0x04},
	{Offset: comCoreClkEn, Value: 0x00},
	{Offset: comLockCmpCfg, Value: 0x00},
	{Offset: comVcoTuneMap, Value: 0x00},
	{Offset: comBgTimer, Value: 0x0a},
	{Offset: comPllIvco, Value: 0x07},
	{Offset: comIntegloopInitval, Value: 0x80},
	{Offset: comCmnMode, Value: 0x01},
	{Offset: comSscEnCenter, Value: 0x01},
	{Offset: comSscPer1, Value: 0x31},
	{Offset: comSscPer2, Value: 0x01},
	{Offset: comSscAdjPer1, Value: 0x00},
	{Offset: comSscAdjPer2, Value: 0x00},
	{Offset: comSscStepSize1, Value: 0x85},
	{Offset: comSscStepSize2, Value: 0x07},
}

var msm8998UsbTx = reg.Table{
	{Offset: txHighzDrvrEn, Value: 0x10},
	{Offset: txRcvDetectLvl2, Value: 0x12},
	{Offset: txLaneMode1, Value: 0x16},
	{Offset: txResCodeLaneOffsetTx, Value: 0x00},
}

var msm8998UsbRx = reg.Table{
	{Offset: rxUcdrFastlockFoGain, Value: 0x0b},
	{Offset: rxEquAdaptorCntrl2, Value: 0x0f},
	{Offset: rxEquAdaptorCntrl3, Value: 0x4e},
	{Offset: rxEquAdaptorCntrl4, Value: 0x18},
	{Offset: rxEqOffsetAdaptorCntrl1, Value: 0x07},
	{Offset: rxOffsetAdaptorCntrl2, Value: 0x80},
	{Offset: rxSigdetCntrl, Value: 0x43},
	{Offset: rxSigdetDeglitchCntrl, Value: 0x1c},
	{Offset: rxUcdrSoSaturationAndEnable, Value: 0x75},
	{Offset: rxUcdrFastlockCountLow, Value: 0x00},
	{Offset: rxUcdrFastlockCountHigh, Value: 0x00},
	{Offset: rxUcdrPiControls, Value: 0x80},
	{Offset: rxUcdrFoGain, Value: 0x0a},
	{Offset: rxUcdrSoGain, Value: 0x06},
	{Offset: rxSigdetEnables, Value: 0x00},
	{Offset: rxVgaCalCntrl2, Value: 0x03},
	{Offset: rxModeRate00, Value: 0x05},
}

var msm8998UsbPcs = reg.Table{
	{Offset: pcsFllCntrl2, Value: 0x83},
	{Offset: pcsFllCntValL, Value: 0x09},
	{Offset: pcsFllCntValHTol, Value: 0xa2},
	{Offset: pcsFllManCode, Value: 0x40},
	{Offset: pcsFllCntrl1, Value: 0x02},
	{Offset: pcsLockDetectConfig1, Value: 0xd1},
	{Offset: pcsLockDetectConfig2, Value: 0x1f},
	{Offset: pcsLockDetectConfig3, Value: 0x47},
	{Offset: pcsPowerStateConfig2, Value: 0x1b},
	{Offset: pcsTxmgnV0, Value: 0x9f},
	{Offset: pcsTxmgnV1, Value: 0x9f},
	{Offset: pcsTxmgnV2, Value: 0xb7},
	{Offset: pcsTxmgnV3, Value: 0x4e},
	{Offset: pcsTxmgnV4, Value: 0x65},
	{Offset: pcsTxmgnLs, Value: 0x6b},
	{Offset: pcsTxdeemphM6dbV0, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbV0, Value: 0x0d},
	{Offset: pcsTxdeemphM6dbV1, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbV1, Value: 0x0d},
	{Offset: pcsTxdeemphM6dbV2, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbV2, Value: 0x0d},
	{Offset: pcsTxdeemphM6dbV3, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbV3, Value: 0x0d},
	{Offset: pcsTxdeemphM6dbV4, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbV4, Value: 0x0d},
	{Offset: pcsTxdeemphM6dbLs, Value: 0x15},
	{Offset: pcsTxdeemphM3p5dbLs, Value: 0x0d},
	{Offset: pcsRateSlewCntrl, Value: 0x02},
	{Offset: pcsPwrupResetDlyTimeAuxclk, Value: 0x04},
	{Offset: pcsTsyncRsyncTime, Value: 0x44},
	{Offset: pcsRcvrDtctDlyP1u2L, Value: 0xe7},
	{Offset: pcsRcvrDtctDlyP1u2H, Value: 0x03},
	{Offset: pcsRcvrDtctDlyU3L, Value: 0x40},
	{Offset: pcsRcvrDtctDlyU3H, Value: 0x00},
	{Offset: pcsRxSigdetLvl, Value: 0x8a},
	{Offset: pcsRxeqtrainingWaitTime, Value: 0x75},
	{Offset: pcsLfpsTxEcstartEqtlock, Value: 0x86},
	{Offset: pcsRxeqtrainingRunTime, Value: 0x13},
}

var qcs615DpSerdes = reg.Table{
	{Offset: comSvsModeClkSel, Value: 0x01},
	{Offset: comSysclkEnSel, Value: 0x37},
	{Offset: comClkSelect, Value: 0x00},
	{Offset: comSysClkCtrl, Value: 0x06},
	{Offset: comBiasEnClkbuflrEn, Value: 0x3f},
	{Offset: comClkEnable1, Value: 0x0e},
	{Offset: comBgCtrl, Value: 0x0f},
	{Offset: comSysclkBufEnable, Value: 0x06},
	{Offset: comClkSelect, Value: 0x30},
	{Offset: comPllIvco, Value: 0x0f},
	{Offset: comPllCctrlMode0, Value: 0x28},
	{Offset: comPllRctrlMode0, Value: 0x16},
	{Offset: comCpCtrlMode0, Value: 0x0b},
	{Offset: comIntegloopGain0Mode0, Value: 0x40},
	{Offset: comIntegloopGain1Mode0, Value: 0x00},
	{Offset: comVcoTuneMap, Value: 0x00},
	{Offset: comBgTimer, Value: 0x08},
	{Offset: comCoreclkDiv, Value: 0x05},
	{Offset: comVcoTuneCtrl, Value: 0x00},
	{Offset: comVcoTune1Mode0, Value: 0x00},
	{Offset: comVcoTune2Mode0, Value: 0x00},
	{Offset: comVcoTuneCtrl, Value: 0x00},
	{Offset: comCoreClkEn, Value: 0x0f},
	{Offset: comCmnConfig, Value: 0x02},
}

func dpRate(hsclk, dec, frac2, frac3, cmp1, cmp2, laneMode uint32) reg.Table {
	return reg.Table{
		{Offset: comHsclkSel, Value: hsclk},
		{Offset: comDecStartMode0, Value: dec},
		{Offset: comDivFracStart1Mode0, Value: 0x00},
		{Offset: comDivFracStart2Mode0, Value: frac2},
		{Offset: comDivFracStart3Mode0, Value: frac3},
		{Offset: comLockCmp1Mode0, Value: cmp1},
		{Offset: comLockCmp2Mode0, Value: cmp2},
		{Offset: comLockCmp3Mode0, Value: 0x00},
		{Offset: txLaneMode1, Value: laneMode},
	}
}

var qcs615DpTx = reg.Table{
	{Offset: txTransceiverBiasEn, Value: 0x1a},
	{Offset: txVmodeCtrl1, Value: 0x40},
	{Offset: txPreStallLdoBoostEn, Value: 0x30},
	{Offset: txInterfaceSelect, Value: 0x3d},
	{Offset: txClkbufEnable, Value: 0x0f},
	{Offset: txResetTsyncEn, Value: 0x03},
	{Offset: txTranDrvrEmpEn, Value: 0x03},
	{Offset: txParrateRecDetectIdleEn, Value: 0x00},
	{Offset: txInterfaceMode, Value: 0x00},
	{Offset: txEmpPost1Lvl, Value: 0x2b},
	{Offset: txDrvLvl, Value: 0x2f},
	{Offset: txBand, Value: 0x4},
	{Offset: txResCodeLaneOffsetTx, Value: 0x12},
	{Offset: txResCodeLaneOffsetRx, Value: 0x12},
}

// QCM2290 returns the stock USB3 configuration of the QCM2290 family.
func QCM2290(name string) *UsbConfig {
	return &UsbConfig{
		Name:        name,
		Offsets:     UsbOffsetsQCM2290,
		Regs:        UsbRegsV3,
		SerdesTable: qcm2290UsbSerdes,
		TxTable:     qcm2290UsbTx,
		RxTable:     usbRx(0x80),
		PcsTable:    qcm2290UsbPcs,
		Rails:       UsbRails,
		Resets:      UsbResets,
		Clocks:      PhyClocks,
	}
}

// SDM660 differs from QCM2290 only in the rx phase interpolator.
func SDM660(name string) *UsbConfig {
	cfg := QCM2290(name)
	cfg.RxTable = usbRx(0x00)
	return cfg
}

// MSM8998 carries its own tables on the QCM2290 block offsets. Its PCS
// layout has the same entries as the v3 one.
func MSM8998(name string) *UsbConfig {
	return &UsbConfig{
		Name:        name,
		Offsets:     UsbOffsetsQCM2290,
		Regs:        UsbRegsV3,
		SerdesTable: msm8998UsbSerdes,
		TxTable:     msm8998UsbTx,
		RxTable:     msm8998UsbRx,
		PcsTable:    msm8998UsbPcs,
		Rails:       UsbRails,
		Resets:      UsbResets,
		Clocks:      PhyClocks,
	}
}

// QCS615 returns the stock DP configuration of the QCS615 family.
func QCS615(name string) *DpConfig {
	return &DpConfig{
		Name:        name,
		Offsets:     DpOffsetsQCS615,
		Regs:        DpRegsV3,
		SerdesTable: qcs615DpSerdes,
		TxTable:     qcs615DpTx,
		RateTables: [NumRateClasses]reg.Table{
			RBR:  dpRate(0x2c, 0x69, 0x80, 0x07, 0xbf, 0x21, 0xc6),
			HBR:  dpRate(0x24, 0x69, 0x80, 0x07, 0x3f, 0x38, 0xc4),
			HBR2: dpRate(0x20, 0x8c, 0x00, 0x0a, 0x7f, 0x70, 0xc4),
		},
		Swing:       DpVoltageSwingV3,
		PreEmphasis: DpPreEmphasisV3,
		AuxCfg1:     DpAuxCfg1V3,
		Rails:       DpRails,
		Resets:      DpResets,
		Clocks:      PhyClocks,
		LinkClock:   "dp_link",
		PixelClock:  "dp_pixel",
		Ops:         DpOpsV3,
	}
}
