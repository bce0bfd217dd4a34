package app

// Sample inputs of the example runs.
const (
	SampleDrugID        = 1
	SampleSearchSMILES  = "C1CN(CCN1CC2=CC3=C(C=C2)OCO3)C(=O)COC4=CC=C(C=C4)Cl"
	SampleImageSMILES   = "c1ccc(C)c(C)c1N"
	SampleImageSmartsID = 1
	SampleAlertSMILES   = "c1ccccc1N(C)C"
)
