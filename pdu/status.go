package pdu

import "fmt"

// CommandStatus is the SMPP command_status enumeration, exposed verbatim
// so applications can switch on it directly (spec §6).
type CommandStatus uint32

// ESME_* status codes, per spec §5.1.3 of the SMPP v3.4/v5.0 specs.
const (
	StatusOK               CommandStatus = 0x00000000
	StatusInvMsgLen        CommandStatus = 0x00000001
	StatusInvCmdLen        CommandStatus = 0x00000002
	StatusInvCmdID         CommandStatus = 0x00000003
	StatusInvBndSts        CommandStatus = 0x00000004
	StatusAlyBnd           CommandStatus = 0x00000005
	StatusInvPrtFlg        CommandStatus = 0x00000006
	StatusInvRegDlvFlg     CommandStatus = 0x00000007
	StatusSysErr           CommandStatus = 0x00000008
	StatusInvSrcAdr        CommandStatus = 0x0000000A
	StatusInvDstAdr        CommandStatus = 0x0000000B
	StatusInvMsgID         CommandStatus = 0x0000000C
	StatusBindFail         CommandStatus = 0x0000000D
	StatusInvPaswd         CommandStatus = 0x0000000E
	StatusInvSysID         CommandStatus = 0x0000000F
	StatusCancelFail       CommandStatus = 0x00000011
	StatusReplaceFail      CommandStatus = 0x00000013
	StatusMsgQFull         CommandStatus = 0x00000014
	StatusInvSerTyp        CommandStatus = 0x00000015
	StatusInvNumDests      CommandStatus = 0x00000033
	StatusInvDLName        CommandStatus = 0x00000034
	StatusInvDestFlag      CommandStatus = 0x00000040
	StatusInvSubRep        CommandStatus = 0x00000042
	StatusInvEsmClass      CommandStatus = 0x00000043
	StatusCntSubDL         CommandStatus = 0x00000044
	StatusSubmitFail       CommandStatus = 0x00000045
	StatusInvSrcTON        CommandStatus = 0x00000048
	StatusInvSrcNPI        CommandStatus = 0x00000049
	StatusInvDstTON        CommandStatus = 0x00000050
	StatusInvDstNPI        CommandStatus = 0x00000051
	StatusInvSysTyp        CommandStatus = 0x00000053
	StatusInvRepFlag       CommandStatus = 0x00000054
	StatusInvNumMsgs       CommandStatus = 0x00000055
	StatusThrottled        CommandStatus = 0x00000058
	StatusInvSched         CommandStatus = 0x00000061
	StatusInvExpiry        CommandStatus = 0x00000062
	StatusInvDftMsgID      CommandStatus = 0x00000063
	StatusRXTAppn          CommandStatus = 0x00000064
	StatusRXPAppn          CommandStatus = 0x00000065
	StatusRXRAppn          CommandStatus = 0x00000066
	StatusQueryFail        CommandStatus = 0x00000067
	StatusInvTLVStream     CommandStatus = 0x000000C0
	StatusTLVNotAllwd      CommandStatus = 0x000000C1
	StatusInvTLVLen        CommandStatus = 0x000000C2
	StatusMissingTLV       CommandStatus = 0x000000C3
	StatusInvTLVVal        CommandStatus = 0x000000C4
	StatusDeliveryFailure  CommandStatus = 0x000000FE
	StatusUnknownErr       CommandStatus = 0x000000FF
)

var statusNames = map[CommandStatus]string{
	StatusOK:              "ESME_ROK",
	StatusInvMsgLen:       "ESME_RINVMSGLEN",
	StatusInvCmdLen:       "ESME_RINVCMDLEN",
	StatusInvCmdID:        "ESME_RINVCMDID",
	StatusInvBndSts:       "ESME_RINVBNDSTS",
	StatusAlyBnd:          "ESME_RALYBND",
	StatusInvPrtFlg:       "ESME_RINVPRTFLG",
	StatusInvRegDlvFlg:    "ESME_RINVREGDLVFLG",
	StatusSysErr:          "ESME_RSYSERR",
	StatusInvSrcAdr:       "ESME_RINVSRCADR",
	StatusInvDstAdr:       "ESME_RINVDSTADR",
	StatusInvMsgID:        "ESME_RINVMSGID",
	StatusBindFail:        "ESME_RBINDFAIL",
	StatusInvPaswd:        "ESME_RINVPASWD",
	StatusInvSysID:        "ESME_RINVSYSID",
	StatusCancelFail:      "ESME_RCANCELFAIL",
	StatusReplaceFail:     "ESME_RREPLACEFAIL",
	StatusMsgQFull:        "ESME_RMSGQFUL",
	StatusInvSerTyp:       "ESME_RINVSERTYP",
	StatusInvNumDests:     "ESME_RINVNUMDESTS",
	StatusInvDLName:       "ESME_RINVDLNAME",
	StatusInvDestFlag:     "ESME_RINVDESTFLAG",
	StatusInvSubRep:       "ESME_RINVSUBREP",
	StatusInvEsmClass:     "ESME_RINVESMCLASS",
	StatusCntSubDL:        "ESME_RCNTSUBDL",
	StatusSubmitFail:      "ESME_RSUBMITFAIL",
	StatusInvSrcTON:       "ESME_RINVSRCTON",
	StatusInvSrcNPI:       "ESME_RINVSRCNPI",
	StatusInvDstTON:       "ESME_RINVDSTTON",
	StatusInvDstNPI:       "ESME_RINVDSTNPI",
	StatusInvSysTyp:       "ESME_RINVSYSTYP",
	StatusInvRepFlag:      "ESME_RINVREPFLAG",
	StatusInvNumMsgs:      "ESME_RINVNUMMSGS",
	StatusThrottled:       "ESME_RTHROTTLED",
	StatusInvSched:        "ESME_RINVSCHED",
	StatusInvExpiry:       "ESME_RINVEXPIRY",
	StatusInvDftMsgID:     "ESME_RINVDFTMSGID",
	StatusRXTAppn:         "ESME_RX_T_APPN",
	StatusRXPAppn:         "ESME_RX_P_APPN",
	StatusRXRAppn:         "ESME_RX_R_APPN",
	StatusQueryFail:       "ESME_RQUERYFAIL",
	StatusInvTLVStream:    "ESME_RINVTLVSTREAM",
	StatusTLVNotAllwd:     "ESME_RTLVNOTALLWD",
	StatusInvTLVLen:       "ESME_RINVTLVLEN",
	StatusMissingTLV:      "ESME_RMISSINGTLV",
	StatusInvTLVVal:       "ESME_RINVTLVVAL",
	StatusDeliveryFailure: "ESME_RDELIVERYFAILURE",
	StatusUnknownErr:      "ESME_RUNKNOWNERR",
}

func (s CommandStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ESME_STATUS(0x%08x)", uint32(s))
}

// Error lets a CommandStatus be used directly as an error value for the
// "application error" taxonomy in spec §7.5: a non-zero status on a
// response is surfaced to the caller as a typed error carrying the code.
func (s CommandStatus) Error() string {
	return s.String()
}
