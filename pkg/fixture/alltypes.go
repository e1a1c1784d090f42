package fixture

// AllTypesOutputs copies recognized allTypesInputs fields into their output
// counterparts. A field absent from the input is absent from the output;
// a field present with a JSON null stays null. Boolean and collection inputs
// are type-guarded: a value of the wrong JSON type maps to null rather than
// being echoed.
func AllTypesOutputs(inputs map[string]any) map[string]any {
	outputs := map[string]any{}
	if inputs == nil {
		return outputs
	}

	if v, ok := inputs["textInput"]; ok {
		outputs["textOutput"] = v
	}
	if v, ok := inputs["decimalInput"]; ok {
		outputs["decimalOutput"] = v
	}
	if v, ok := inputs["integerInput"]; ok {
		outputs["integerOutput"] = v
	}
	if v, ok := inputs["booleanInput"]; ok {
		if b, isBool := v.(bool); isBool {
			outputs["booleanOutput"] = b
		} else {
			outputs["booleanOutput"] = nil
		}
	}
	if v, ok := inputs["datetimeInput"]; ok {
		outputs["datetimeOutput"] = v
	}
	if v, ok := inputs["collectionInput"]; ok {
		if arr, isArr := v.([]any); isArr {
			outputs["collectionOutput"] = arr
		} else {
			outputs["collectionOutput"] = nil
		}
	}
	return outputs
}
