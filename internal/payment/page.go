package payment

// paymentPage is the embedded payment surface. It is a complete document
// served on its own path so automation has to switch into a separate
// navigable context, fill the form, and trigger the sentinel from there.
const paymentPage = `<!DOCTYPE html>
<html>
<head>
	<title>Secure Payment</title>
	<style>
		body { font-family: sans-serif; padding: 20px; background: #f9f9f9; }
		.box { background: white; padding: 20px; border: 1px solid #ccc; border-radius: 5px; }
		button { background: #007bff; color: white; border: none; padding: 10px 20px; cursor: pointer; width: 100%; margin-top: 10px; }
		button:disabled { background: #ccc; cursor: not-allowed; }
		.form-group { margin-bottom: 15px; }
		label { display: block; font-weight: bold; margin-bottom: 5px; font-size: 14px; }
		input[type="text"], input[type="password"] {
			padding: 8px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box;
		}
		.card-inputs { display: flex; gap: 5px; }
		.card-inputs input { width: 25%; text-align: center; }
		.row { display: flex; gap: 15px; }
		.col { flex: 1; }
	</style>
</head>
<body>
	<div class="box">
		<h3>Payment Info</h3>
		<hr/>

		<div class="form-group">
			<label><input type="radio" name="pay_method" value="card" checked> Credit Card</label>
			<label><input type="radio" name="pay_method" value="bank"> Bank Transfer</label>
		</div>

		<div class="form-group">
			<label for="input-name">Name</label>
			<input type="text" id="input-name" placeholder="Jane Doe" style="width: 100%;">
		</div>

		<div class="form-group">
			<label for="input-phone">Phone</label>
			<input type="text" id="input-phone" placeholder="010-1234-5678" style="width: 100%;">
		</div>

		<div class="form-group">
			<label>Card Number</label>
			<div class="card-inputs">
				<input type="text" id="input-card-1" maxlength="4" placeholder="0000">
				<input type="text" id="input-card-2" maxlength="4" placeholder="0000">
				<input type="text" id="input-card-3" maxlength="4" placeholder="0000">
				<input type="text" id="input-card-4" maxlength="4" placeholder="0000">
			</div>
		</div>

		<div class="row">
			<div class="col form-group">
				<label for="input-cvc">CVC (3 digits)</label>
				<input type="password" id="input-cvc" maxlength="3" placeholder="***" style="width: 100%;">
			</div>
			<div class="col form-group">
				<label for="input-pwd">PIN (first 2 digits)</label>
				<input type="password" id="input-pwd" maxlength="2" placeholder="**" style="width: 100%;">
			</div>
		</div>

		<hr/>

		<label style="font-weight: normal; font-size: 14px;">
			<input type="checkbox" id="chk_agree" onchange="toggleButton()">
			(Required) I agree to the payment terms.
		</label>
		<br/>

		<button id="btn_pay" disabled onclick="processPayment()">Pay</button>
	</div>

	<script>
		function toggleButton() {
			const agree = document.getElementById('chk_agree').checked;
			document.getElementById('btn_pay').disabled = !agree;
		}

		function processPayment() {
			const ids = ['input-name', 'input-phone', 'input-card-1', 'input-card-2', 'input-card-3', 'input-card-4', 'input-cvc', 'input-pwd'];
			for (let id of ids) {
				if (!document.getElementById(id).value) {
					alert('Please fill all fields');
					document.getElementById(id).focus();
					return;
				}
			}

			// Broadcast completion back to the host context
			fetch('/api/payment/complete', { method: 'POST' }).then(() => {
				window.parent.postMessage('PAYMENT_SUCCESS', '*');
				document.getElementById('btn_pay').innerText = 'Paid';
				document.getElementById('btn_pay').disabled = true;
			});
		}
	</script>
</body>
</html>
`
